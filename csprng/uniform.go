// Package csprng provides a deterministic, seedable sampler
// for random moduli and bases.
package csprng

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// bufSize is the default buffer size of UniformSampler.
const bufSize = 8192

// UniformSampler samples values from uniform distribution.
// This uses blake2b as a underlying prng.
type UniformSampler struct {
	prng blake2b.XOF

	buf [bufSize]byte
	ptr int
}

// NewUniformSampler creates a new UniformSampler.
//
// Panics when read from crypto/rand or blake2b initialization fails.
func NewUniformSampler() *UniformSampler {
	seed := make([]byte, 16)
	if _, err := rand.Read(seed); err != nil {
		panic(err)
	}
	return NewUniformSamplerWithSeed(seed)
}

// NewUniformSamplerWithSeed creates a new UniformSampler, with user supplied seed.
// Two samplers with the same seed produce the same stream.
//
// Panics when blake2b initialization fails.
func NewUniformSamplerWithSeed(seed []byte) *UniformSampler {
	prng, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, nil)
	if err != nil {
		panic(err)
	}

	if _, err = prng.Write(seed); err != nil {
		panic(err)
	}

	return &UniformSampler{
		prng: prng,

		buf: [bufSize]byte{},
		ptr: bufSize,
	}
}

// Read implements the [io.Reader] interface.
func (s *UniformSampler) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if s.ptr == bufSize {
			s.fill()
		}
		c := copy(p[n:], s.buf[s.ptr:])
		s.ptr += c
		n += c
	}
	return n, nil
}

func (s *UniformSampler) fill() {
	if _, err := s.prng.Read(s.buf[:]); err != nil {
		panic(err)
	}
	s.ptr = 0
}

// Sample uniformly samples a random uint64.
func (s *UniformSampler) Sample() uint64 {
	if s.ptr+8 > bufSize {
		s.fill()
	}

	var res uint64
	res |= uint64(s.buf[s.ptr+0])
	res |= uint64(s.buf[s.ptr+1]) << 8
	res |= uint64(s.buf[s.ptr+2]) << 16
	res |= uint64(s.buf[s.ptr+3]) << 24
	res |= uint64(s.buf[s.ptr+4]) << 32
	res |= uint64(s.buf[s.ptr+5]) << 40
	res |= uint64(s.buf[s.ptr+6]) << 48
	res |= uint64(s.buf[s.ptr+7]) << 56
	s.ptr += 8

	return res
}

// SampleBits samples a random integer in [0, 2^bits).
func (s *UniformSampler) SampleBits(bits int) *big.Int {
	if bits <= 0 {
		return big.NewInt(0)
	}

	b := make([]byte, (bits+7)/8)
	s.Read(b)
	if r := bits % 8; r != 0 {
		b[0] &= byte(1<<r) - 1
	}
	return big.NewInt(0).SetBytes(b)
}

// SampleModulus samples a random odd integer of exactly the given bit length.
// The result is never a power of two.
//
// Panics if bits < 2.
func (s *UniformSampler) SampleModulus(bits int) *big.Int {
	if bits < 2 {
		panic("modulus must have at least two bits")
	}

	n := s.SampleBits(bits)
	n.SetBit(n, bits-1, 1)
	n.SetBit(n, 0, 1)
	return n
}

// SampleBelow uniformly samples a random integer in [0, n).
//
// Panics if n is not positive.
func (s *UniformSampler) SampleBelow(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		panic("bound must be positive")
	}

	for {
		x := s.SampleBits(n.BitLen())
		if x.Cmp(n) < 0 {
			return x
		}
	}
}
