// Package coef derives the auxiliary coefficients used by a device
// to run Barrett and Montgomery reduction modulo an RSA modulus.
package coef

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/sp301415/rsa2c/num"
)

// Coefficients holds a modulus together with its derived coefficients.
// All values are computed by Derive and should be treated as read-only.
type Coefficients struct {
	// Modulus is the modulus N.
	Modulus *big.Int
	// Bits is the bit length k of N. The radix is R = 2^k.
	Bits int

	// Barrett is floor(R^2 / N).
	Barrett *big.Int
	// InverseModulo is N', where R * R' - N * N' = 1.
	InverseModulo *big.Int
	// RBar is R mod N.
	RBar *big.Int
}

// Derive computes the coefficients of n.
//
// Returns ErrInvalidModulus if n is non-positive, even, or a power of two.
func Derive(n *big.Int) (*Coefficients, error) {
	if n.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidModulus, "modulus must be positive, got %v", n)
	}
	if num.IsPowerOfTwo(n) {
		return nil, errors.Wrapf(ErrInvalidModulus, "modulus must not be a power of two, got %v", n)
	}
	if !num.IsOdd(n) {
		return nil, errors.Wrapf(ErrInvalidModulus, "modulus must be odd, got %v", n)
	}

	k := n.BitLen()

	barrett := num.Pow2(uint(k) << 1)
	barrett.Div(barrett, n)

	rBar := num.Pow2(uint(k))
	rBar.Mod(rBar, n)

	_, nInv := RadixInverse(n, k)

	return &Coefficients{
		Modulus: big.NewInt(0).Set(n),
		Bits:    k,

		Barrett:       barrett,
		InverseModulo: nInv,
		RBar:          rBar,
	}, nil
}

// DeriveHex parses s with ParseHex and derives its coefficients.
func DeriveHex(s string) (*Coefficients, error) {
	n, err := ParseHex(s)
	if err != nil {
		return nil, err
	}
	return Derive(n)
}

// HexBytes normalizes a hex string and decodes it to big-endian bytes.
// An optional "0x" prefix and a trailing "L" are dropped,
// and an odd number of digits is padded with a single leading zero.
func HexBytes(s string) ([]byte, error) {
	d := strings.TrimSpace(s)
	if len(d) >= 2 && (d[:2] == "0x" || d[:2] == "0X") {
		d = d[2:]
	}
	d = strings.TrimSuffix(strings.TrimSuffix(d, "L"), "l")

	if len(d) == 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "empty hex string %q", s)
	}
	if len(d)%2 != 0 {
		d = "0" + d
	}

	b, err := hex.DecodeString(d)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "malformed hex string %q: %v", s, err)
	}
	return b, nil
}

// ParseHex parses a hex string into a non-negative integer.
// See HexBytes for accepted forms.
func ParseHex(s string) (*big.Int, error) {
	b, err := HexBytes(s)
	if err != nil {
		return nil, err
	}
	return big.NewInt(0).SetBytes(b), nil
}

// ParseDecimal parses a string of decimal digits into a non-negative integer.
func ParseDecimal(s string) (*big.Int, error) {
	d := strings.TrimSpace(s)
	if len(d) == 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "empty decimal string %q", s)
	}
	for _, c := range d {
		if c < '0' || c > '9' {
			return nil, errors.Wrapf(ErrInvalidInput, "malformed decimal string %q", s)
		}
	}

	x, ok := big.NewInt(0).SetString(d, 10)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidInput, "malformed decimal string %q", s)
	}
	return x, nil
}
