package keystore_test

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sp301415/rsa2c/carray"
	"github.com/sp301415/rsa2c/coef"
	"github.com/sp301415/rsa2c/csprng"
	"github.com/sp301415/rsa2c/keystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var toyInput = keystore.Input{
	Bits:     16,
	Modulus:  []byte{0x00, 0xc5, 0xa3},
	Exponent: big.NewInt(65537),
}

const toyLittleEndian = `.moduloData =
{
    0xA3u, 0xC5u,
},
.expData =
{
    0x01u, 0x00u, 0x01u, 0x00u,
},
.barrettData =
{
    0x99u, 0x4Bu, 0x01u, 0x00u, 0x00u, 0x00u,
},
.inverseModuloData =
{
    0xF5u, 0x69u,
},
.rBarData =
{
    0x5Du, 0x3Au,
},
`

const toyBigEndian = `.moduloData =
{
    0xC5u, 0xA3u,
},
.expData =
{
    0x00u, 0x01u, 0x00u, 0x01u,
},
.barrettData =
{
    0x00u, 0x00u, 0x00u, 0x01u, 0x4Bu, 0x99u,
},
.inverseModuloData =
{
    0x69u, 0xF5u,
},
.rBarData =
{
    0x3Au, 0x5Du,
},
`

func TestBuild(t *testing.T) {
	t.Run("LittleEndian", func(t *testing.T) {
		st, err := keystore.Build(toyInput, keystore.Options{Verify: true})
		require.NoError(t, err)

		assert.Equal(t, big.NewInt(84889), st.Coefficients.Barrett)
		assert.Equal(t, big.NewInt(27125), st.Coefficients.InverseModulo)
		assert.Equal(t, big.NewInt(14941), st.Coefficients.RBar)
		assert.Equal(t, toyLittleEndian, st.String())
	})

	t.Run("BigEndian", func(t *testing.T) {
		st, err := keystore.Build(toyInput, keystore.Options{BigEndian: true, Verify: true})
		require.NoError(t, err)
		assert.Equal(t, toyBigEndian, st.String())
	})

	t.Run("WriteTo", func(t *testing.T) {
		st, err := keystore.Build(toyInput, keystore.Options{})
		require.NoError(t, err)

		var buf bytes.Buffer
		n, err := st.WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, int64(len(toyLittleEndian)), n)
		assert.Equal(t, toyLittleEndian, buf.String())
	})

	t.Run("FieldOrder", func(t *testing.T) {
		st, err := keystore.Build(toyInput, keystore.Options{})
		require.NoError(t, err)

		s := st.String()
		last := -1
		for _, name := range carray.Fields {
			i := strings.Index(s, "."+name+" =")
			assert.Greater(t, i, last, name)
			last = i
		}
	})
}

func TestBuildFixedWidth(t *testing.T) {
	n := csprng.NewUniformSamplerWithSeed([]byte("keystore")).SampleModulus(2048)
	in := keystore.Input{Bits: 2048, Modulus: n.Bytes(), Exponent: big.NewInt(65537)}

	for _, le := range []bool{true, false} {
		st, err := keystore.Build(in, keystore.Options{BigEndian: !le, FixedWidth: true, Verify: true})
		require.NoError(t, err)

		assert.Len(t, st.Data[carray.FieldModulus], 256)
		assert.Len(t, st.Data[carray.FieldExponent], 4)
		assert.Len(t, st.Data[carray.FieldBarrett], 260)
		assert.Len(t, st.Data[carray.FieldInverseModulo], 256)
		assert.Len(t, st.Data[carray.FieldRBar], 256)

		c := st.Coefficients
		assert.Equal(t, 0, carray.ToInt(st.Data[carray.FieldModulus], le).Cmp(n))
		assert.Equal(t, 0, carray.ToInt(st.Data[carray.FieldBarrett], le).Cmp(c.Barrett))
		assert.Equal(t, 0, carray.ToInt(st.Data[carray.FieldInverseModulo], le).Cmp(c.InverseModulo))
		assert.Equal(t, 0, carray.ToInt(st.Data[carray.FieldRBar], le).Cmp(c.RBar))
	}
}

func TestBuildInvalid(t *testing.T) {
	t.Run("LengthMismatch", func(t *testing.T) {
		in := toyInput
		in.Bits = 32
		st, err := keystore.Build(in, keystore.Options{})
		assert.Nil(t, st)
		assert.True(t, errors.Is(err, coef.ErrLengthMismatch), err)
	})

	t.Run("EvenModulus", func(t *testing.T) {
		in := toyInput
		in.Modulus = []byte{0xc5, 0xa4}
		st, err := keystore.Build(in, keystore.Options{})
		assert.Nil(t, st)
		assert.True(t, errors.Is(err, coef.ErrInvalidModulus), err)
	})

	t.Run("PowerOfTwo", func(t *testing.T) {
		in := toyInput
		in.Modulus = []byte{0x80, 0x00}
		st, err := keystore.Build(in, keystore.Options{})
		assert.Nil(t, st)
		assert.True(t, errors.Is(err, coef.ErrInvalidModulus), err)
	})

	t.Run("NoExponent", func(t *testing.T) {
		in := toyInput
		in.Exponent = nil
		st, err := keystore.Build(in, keystore.Options{})
		assert.Nil(t, st)
		assert.True(t, errors.Is(err, coef.ErrInvalidInput), err)
	})
}
