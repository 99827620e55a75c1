package coef

import (
	"math/big"

	"github.com/sp301415/rsa2c/num"
)

// RadixInverse returns (rInv, nInv) satisfying R * rInv - n * nInv = 1, where R = 2^k.
// Both outputs are non-negative.
//
// This is the binary variant of the extended Euclidean algorithm:
// it only halves and conditionally adds n, so n must be odd.
// Panics if n is not odd and positive, or if k < 1.
func RadixInverse(n *big.Int, k int) (rInv, nInv *big.Int) {
	if n.Sign() <= 0 || !num.IsOdd(n) {
		panic("modulus must be odd and positive")
	}
	if k < 1 {
		panic("bit length must be positive")
	}

	rInv = big.NewInt(1)
	nInv = big.NewInt(0)
	top := num.Pow2(uint(k - 1))

	for i := 0; i < k; i++ {
		if rInv.Bit(0) == 0 {
			rInv.Rsh(rInv, 1)
			nInv.Rsh(nInv, 1)
			continue
		}

		rInv.Add(rInv, n)
		rInv.Rsh(rInv, 1)
		nInv.Rsh(nInv, 1)
		nInv.Add(nInv, top)
	}

	return rInv, nInv
}
