package coef

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/sp301415/rsa2c/num"
)

// Reducer computes modular arithmetic modulo N
// using only the precomputed Coefficients.
// It assumes that all inputs are between 0 and N.
type Reducer struct {
	*Coefficients

	mask  *big.Int
	bound *big.Int

	quo  *big.Int
	quoN *big.Int
	prod *big.Int
	m    *big.Int
}

// NewReducer creates a new Reducer for the given coefficients.
func NewReducer(c *Coefficients) *Reducer {
	mask := num.Pow2(uint(c.Bits))
	mask.Sub(mask, big.NewInt(1))

	bound := big.NewInt(0).Mul(c.Modulus, c.Modulus)

	return &Reducer{
		Coefficients: c,

		mask:  mask,
		bound: bound,

		quo:  big.NewInt(0),
		quoN: big.NewInt(0),
		prod: big.NewInt(0),
		m:    big.NewInt(0),
	}
}

// ShallowCopy creates a copy of Reducer that is thread-safe.
func (r *Reducer) ShallowCopy() *Reducer {
	return &Reducer{
		Coefficients: r.Coefficients,

		mask:  r.mask,
		bound: r.bound,

		quo:  big.NewInt(0),
		quoN: big.NewInt(0),
		prod: big.NewInt(0),
		m:    big.NewInt(0),
	}
}

// Reduce performs the Barrett reduction on the input x.
// Panics if x is not in [0, N^2).
func (r *Reducer) Reduce(x *big.Int) {
	if x.Sign() < 0 || x.Cmp(r.bound) >= 0 {
		panic("input must be in the range [0, N^2)")
	}

	r.quo.Mul(x, r.Barrett)
	r.quo.Rsh(r.quo, uint(r.Bits)<<1)
	r.quoN.Mul(r.quo, r.Modulus)
	x.Sub(x, r.quoN)
	for x.Cmp(r.Modulus) >= 0 {
		x.Sub(x, r.Modulus)
	}
}

// MontMul computes xOut = x0 * x1 * R^-1 mod N.
func (r *Reducer) MontMul(x0, x1, xOut *big.Int) {
	r.prod.Mul(x0, x1)

	r.m.And(r.prod, r.mask)
	r.m.Mul(r.m, r.InverseModulo)
	r.m.And(r.m, r.mask)
	r.m.Mul(r.m, r.Modulus)

	r.prod.Add(r.prod, r.m)
	r.prod.Rsh(r.prod, uint(r.Bits))
	if r.prod.Cmp(r.Modulus) >= 0 {
		r.prod.Sub(r.prod, r.Modulus)
	}
	xOut.Set(r.prod)
}

// ToMont computes xOut = x * R mod N.
func (r *Reducer) ToMont(x, xOut *big.Int) {
	xOut.Mul(x, r.RBar)
	r.Reduce(xOut)
}

// FromMont computes xOut = x * R^-1 mod N.
func (r *Reducer) FromMont(x, xOut *big.Int) {
	r.MontMul(x, big.NewInt(1), xOut)
}

// Exp returns base^e mod N, computed in Montgomery form.
// Panics if base is not in [0, N).
func (r *Reducer) Exp(base, e *big.Int) *big.Int {
	if base.Sign() < 0 || base.Cmp(r.Modulus) >= 0 {
		panic("base must be in the range [0, N)")
	}

	baseMont := big.NewInt(0)
	r.ToMont(base, baseMont)

	acc := big.NewInt(0).Set(r.RBar)
	for i := e.BitLen() - 1; i >= 0; i-- {
		r.MontMul(acc, acc, acc)
		if e.Bit(i) == 1 {
			r.MontMul(acc, baseMont, acc)
		}
	}
	r.FromMont(acc, acc)

	return acc
}

// Check verifies c against math/big.
// It tests N * N' = -1 mod R, then exponentiates each base with e
// through a Reducer. If no base is given, a fixed set is used.
//
// Returns ErrCheckFailed on any mismatch.
func (c *Coefficients) Check(e *big.Int, bases ...*big.Int) error {
	r := NewReducer(c)

	ident := big.NewInt(0).Mul(c.Modulus, c.InverseModulo)
	ident.Add(ident, big.NewInt(1))
	ident.And(ident, r.mask)
	if ident.Sign() != 0 {
		return errors.Wrapf(ErrCheckFailed, "N * N' + 1 is not divisible by 2^%d", c.Bits)
	}

	if len(bases) == 0 {
		nMinusOne := big.NewInt(0).Sub(c.Modulus, big.NewInt(1))
		bases = []*big.Int{big.NewInt(2), nMinusOne, c.RBar, c.InverseModulo}
	}

	x := big.NewInt(0)
	for _, b := range bases {
		x.Mod(b, c.Modulus)
		got := r.Exp(x, e)
		want := big.NewInt(0).Exp(x, e, c.Modulus)
		if got.Cmp(want) != 0 {
			return errors.Wrapf(ErrCheckFailed, "%v^%v mod N: got %v, want %v", x, e, got, want)
		}
	}

	return nil
}
