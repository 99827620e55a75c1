// Package carray converts integers to byte lists and renders them
// as C initializer lists for fixed-size uint8_t arrays.
package carray

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/sp301415/rsa2c/coef"
	"github.com/sp301415/rsa2c/num"
)

const (
	// WordSize is the size of a device word in bytes.
	WordSize = 4
	// barrettPad is the number of zero bytes added to the Barrett coefficient.
	barrettPad = 3
)

// FromHex converts a hex string to bytes, most significant byte first.
// If littleEndian is true, the order is reversed.
// See coef.HexBytes for accepted forms.
func FromHex(s string, littleEndian bool) ([]byte, error) {
	b, err := coef.HexBytes(s)
	if err != nil {
		return nil, err
	}
	if littleEndian {
		num.ReverseInPlace(b)
	}
	return b, nil
}

// FromInt converts a non-negative integer to bytes, most significant byte first.
// Zero is encoded as a single zero byte.
// If littleEndian is true, the order is reversed.
func FromInt(v *big.Int, littleEndian bool) []byte {
	if v.Sign() < 0 {
		panic("value must be non-negative")
	}

	b := v.Bytes()
	if len(b) == 0 {
		b = []byte{0}
	}
	if littleEndian {
		num.ReverseInPlace(b)
	}
	return b
}

// ToInt interprets b as an integer with the given byte order.
func ToInt(b []byte, littleEndian bool) *big.Int {
	if !littleEndian {
		return big.NewInt(0).SetBytes(b)
	}

	be := make([]byte, len(b))
	copy(be, b)
	num.ReverseInPlace(be)
	return big.NewInt(0).SetBytes(be)
}

// PadTo pads b with zero bytes at its most significant end
// until it has length n. b is returned as is if it is already long enough.
func PadTo(b []byte, n int, littleEndian bool) []byte {
	if len(b) >= n {
		return b
	}
	if littleEndian {
		return num.PadBack(b, n-len(b))
	}
	return num.PadFront(b, n-len(b))
}

// Modulus normalizes the big-endian modulus bytes raw against the declared bit length.
//
// Key dump tools emit a leading zero byte when the top bit of the modulus is set.
// If raw has exactly bits/8 + 1 bytes and starts with zero, that byte is dropped.
// Returns coef.ErrLengthMismatch if the remaining length is not bits/8.
//
// raw is not modified.
func Modulus(raw []byte, bits int, littleEndian bool) ([]byte, error) {
	size := bits / 8

	b := raw
	if len(b) == size+1 && b[0] == 0 {
		b = b[1:]
	}
	if bits <= 0 || len(b) != size {
		return nil, errors.Wrapf(coef.ErrLengthMismatch, "modulus has %d bytes, key length is %d bits", len(b), bits)
	}

	out := make([]byte, len(b))
	copy(out, b)
	if littleEndian {
		num.ReverseInPlace(out)
	}
	return out, nil
}

// Exponent converts the exponent to bytes,
// padded at its most significant end to a multiple of WordSize.
func Exponent(e *big.Int, littleEndian bool) []byte {
	b := FromInt(e, littleEndian)
	return PadTo(b, len(b)+num.PadToMultiple(len(b), WordSize), littleEndian)
}

// Barrett converts the Barrett coefficient to bytes,
// followed at its most significant end by three zero bytes.
func Barrett(b *big.Int, littleEndian bool) []byte {
	out := FromInt(b, littleEndian)
	if littleEndian {
		return num.PadBack(out, barrettPad)
	}
	return num.PadFront(out, barrettPad)
}
