package main

import (
	"fmt"
	"math/big"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sp301415/rsa2c/coef"
	"github.com/sp301415/rsa2c/csprng"
	"github.com/sp301415/rsa2c/num"
	"github.com/urfave/cli/v2"
)

const selfTestBases = 4

func SelfTest(cCtx *cli.Context) error {
	bits := cCtx.Int("bits")
	count := cCtx.Int("count")
	if bits < 2 {
		return errors.Errorf("--bits must be at least 2, got %d", bits)
	}

	var us *csprng.UniformSampler
	if seed := cCtx.String("seed"); seed != "" {
		us = csprng.NewUniformSamplerWithSeed([]byte(seed))
	} else {
		us = csprng.NewUniformSampler()
	}

	e := big.NewInt(65537)
	failed := 0
	for i := 0; i < count; i++ {
		n := us.SampleModulus(bits)
		ctx := log.WithFields(log.Fields{"key": i, "bits": bits})

		if err := checkModulus(us, n, e); err != nil {
			ctx.WithError(err).Warn("Check failed")
			failed++
			continue
		}
		ctx.Debug("Check passed")
	}

	if failed > 0 {
		fmt.Fprintf(cCtx.App.Writer, "%s %d/%d moduli of %d bits\n", color.RedString("FAIL"), failed, count, bits)
		return errors.Errorf("%d of %d self checks failed", failed, count)
	}
	fmt.Fprintf(cCtx.App.Writer, "%s %d moduli of %d bits\n", color.GreenString("PASS"), count, bits)
	return nil
}

func checkModulus(us *csprng.UniformSampler, n, e *big.Int) error {
	c, err := coef.Derive(n)
	if err != nil {
		return err
	}

	rInv, nInv := coef.RadixInverse(n, c.Bits)
	lhs := num.Pow2(uint(c.Bits))
	lhs.Mul(lhs, rInv)
	lhs.Sub(lhs, big.NewInt(0).Mul(n, nInv))
	if lhs.Cmp(big.NewInt(1)) != 0 {
		return errors.Wrapf(coef.ErrCheckFailed, "R * R' - N * N' = %v", lhs)
	}

	bases := make([]*big.Int, selfTestBases)
	for i := range bases {
		bases[i] = us.SampleBelow(n)
	}
	return c.Check(e, bases...)
}
