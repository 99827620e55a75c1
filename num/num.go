// Package num implements various utility functions regarding numeric types.
package num

import (
	"math/big"
)

// IsPowerOfTwo returns true if x is a positive power of two.
func IsPowerOfTwo(x *big.Int) bool {
	if x.Sign() <= 0 {
		return false
	}
	return x.TrailingZeroBits() == uint(x.BitLen()-1)
}

// IsOdd returns true if x is odd.
func IsOdd(x *big.Int) bool {
	return x.Bit(0) == 1
}

// Pow2 returns 2^k as a new big.Int.
func Pow2(k uint) *big.Int {
	return big.NewInt(0).Lsh(big.NewInt(1), k)
}

// ReverseInPlace reverses the order of v in-place.
func ReverseInPlace[T any](v []T) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}

// PadFront returns v with n zero values prepended.
// The returned slice never aliases v.
func PadFront[T any](v []T, n int) []T {
	out := make([]T, n+len(v))
	copy(out[n:], v)
	return out
}

// PadBack returns v with n zero values appended.
// The returned slice never aliases v.
func PadBack[T any](v []T, n int) []T {
	out := make([]T, len(v)+n)
	copy(out, v)
	return out
}

// PadToMultiple returns the number of zero values needed
// to round l up to a multiple of m.
func PadToMultiple(l, m int) int {
	if r := l % m; r != 0 {
		return m - r
	}
	return 0
}
