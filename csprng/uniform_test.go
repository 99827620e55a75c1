package csprng_test

import (
	"math/big"
	"testing"

	"github.com/sp301415/rsa2c/csprng"
	"github.com/sp301415/rsa2c/num"
	"github.com/stretchr/testify/assert"
)

func TestUniformSampler(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		us0 := csprng.NewUniformSamplerWithSeed([]byte("seed"))
		us1 := csprng.NewUniformSamplerWithSeed([]byte("seed"))
		for i := 0; i < 2*8192/8+3; i++ {
			assert.Equal(t, us0.Sample(), us1.Sample())
		}
		assert.Equal(t, 0, us0.SampleModulus(2048).Cmp(us1.SampleModulus(2048)))
	})

	t.Run("SampleModulus", func(t *testing.T) {
		us := csprng.NewUniformSampler()
		for _, bits := range []int{2, 3, 8, 12, 17, 2048, 3072} {
			n := us.SampleModulus(bits)
			assert.Equal(t, bits, n.BitLen())
			assert.True(t, num.IsOdd(n))
			assert.False(t, num.IsPowerOfTwo(n))
		}
		assert.Panics(t, func() { us.SampleModulus(1) })
	})

	t.Run("SampleBelow", func(t *testing.T) {
		us := csprng.NewUniformSampler()
		n := big.NewInt(3233)
		for i := 0; i < 1024; i++ {
			x := us.SampleBelow(n)
			assert.True(t, x.Sign() >= 0 && x.Cmp(n) < 0)
		}
		assert.Panics(t, func() { us.SampleBelow(big.NewInt(0)) })
	})

	t.Run("Read", func(t *testing.T) {
		us := csprng.NewUniformSamplerWithSeed([]byte("read"))
		p := make([]byte, 3*8192+5)
		n, err := us.Read(p)
		assert.NoError(t, err)
		assert.Equal(t, len(p), n)
	})
}
