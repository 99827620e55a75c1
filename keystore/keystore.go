// Package keystore assembles the public key storage initializer
// consumed by the bootloader: the modulus, the exponent,
// and the three coefficients derived from the modulus.
package keystore

import (
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/sp301415/rsa2c/carray"
	"github.com/sp301415/rsa2c/coef"
)

// Input is a public key as handed over by the key extraction step.
type Input struct {
	// Bits is the declared key length in bits.
	Bits int
	// Modulus is the big-endian modulus, possibly with one extra leading zero byte.
	Modulus []byte
	// Exponent is the public exponent.
	Exponent *big.Int
}

// Options control how the storage is rendered.
type Options struct {
	// BigEndian keeps all byte lists most significant byte first.
	// By default they are reversed to little endian, as the device expects.
	BigEndian bool
	// FixedWidth pads the inverse and R-bar to the modulus length,
	// and the Barrett coefficient to the modulus length plus one word.
	FixedWidth bool
	// Verify runs Coefficients.Check before rendering.
	Verify bool
}

// Storage is a fully rendered key storage.
type Storage struct {
	// Coefficients are the coefficients the storage was rendered from.
	Coefficients *coef.Coefficients
	// Exponent is the public exponent.
	Exponent *big.Int

	// Data holds the byte list of each field, keyed by field name.
	Data map[string][]byte
}

// Build validates in and renders all five fields.
// Either every field is produced, or an error is returned.
func Build(in Input, opts Options) (*Storage, error) {
	le := !opts.BigEndian

	if in.Exponent == nil || in.Exponent.Sign() < 0 {
		return nil, errors.Wrap(coef.ErrInvalidInput, "exponent must be a non-negative integer")
	}

	modBytes, err := carray.Modulus(in.Modulus, in.Bits, le)
	if err != nil {
		return nil, err
	}

	c, err := coef.Derive(carray.ToInt(modBytes, le))
	if err != nil {
		return nil, err
	}

	if opts.Verify {
		if err := c.Check(in.Exponent); err != nil {
			return nil, err
		}
	}

	barrett := carray.Barrett(c.Barrett, le)
	inverse := carray.FromInt(c.InverseModulo, le)
	rBar := carray.FromInt(c.RBar, le)
	if opts.FixedWidth {
		size := len(modBytes)
		barrett = carray.PadTo(barrett, size+carray.WordSize, le)
		inverse = carray.PadTo(inverse, size, le)
		rBar = carray.PadTo(rBar, size, le)
	}

	return &Storage{
		Coefficients: c,
		Exponent:     in.Exponent,

		Data: map[string][]byte{
			carray.FieldModulus:       modBytes,
			carray.FieldExponent:      carray.Exponent(in.Exponent, le),
			carray.FieldBarrett:       barrett,
			carray.FieldInverseModulo: inverse,
			carray.FieldRBar:          rBar,
		},
	}, nil
}

// String returns the rendered storage,
// one block per field in carray.Fields order, each followed by a newline.
func (s *Storage) String() string {
	var sb strings.Builder
	for _, name := range carray.Fields {
		sb.WriteString(carray.Block(name, s.Data[name]))
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteTo implements the [io.WriterTo] interface.
func (s *Storage) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
