package main

import (
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/sp301415/rsa2c/carray"
	"github.com/sp301415/rsa2c/coef"
	"github.com/sp301415/rsa2c/keydump"
	"github.com/sp301415/rsa2c/keystore"
	"github.com/urfave/cli/v2"
)

func Generate(cCtx *cli.Context) error {
	in, err := readInput(cCtx)
	if err != nil {
		return err
	}

	opts := keystore.Options{
		BigEndian:  cCtx.Bool("norev"),
		FixedWidth: cCtx.Bool("fixed-width"),
		Verify:     !cCtx.Bool("no-verify"),
	}

	log.WithFields(log.Fields{
		"bits":        in.Bits,
		"exponent":    in.Exponent,
		"big_endian":  opts.BigEndian,
		"fixed_width": opts.FixedWidth,
	}).Info("Deriving coefficients")

	st, err := keystore.Build(*in, opts)
	if err != nil {
		return errors.WithMessage(err, "failed to build key storage")
	}
	if opts.Verify {
		log.Debug("Montgomery exponentiation check passed")
	}

	outputPath := cCtx.String("output")
	if outputPath == "" {
		_, err := st.WriteTo(cCtx.App.Writer)
		return err
	}

	if err := os.WriteFile(outputPath, []byte(st.String()), 0644); err != nil {
		return errors.Wrap(err, "failed to write output file")
	}
	log.WithField("path", outputPath).Info("Wrote key storage")

	return nil
}

func readInput(cCtx *cli.Context) (*keystore.Input, error) {
	if path := cCtx.String("key"); path != "" {
		var key *keydump.Key
		var err error
		if path == "-" {
			key, err = keydump.Parse(os.Stdin)
		} else {
			key, err = keydump.ParseFile(path)
		}
		if err != nil {
			return nil, err
		}

		log.WithFields(log.Fields{
			"path":  path,
			"bits":  key.Bits,
			"bytes": len(key.Modulus),
		}).Debug("Read key dump")

		return &keystore.Input{Bits: key.Bits, Modulus: key.Modulus, Exponent: key.Exponent}, nil
	}

	if cCtx.String("modulus") == "" {
		return nil, errors.New("either --key or --modulus is required")
	}

	n, err := coef.ParseHex(cCtx.String("modulus"))
	if err != nil {
		return nil, errors.WithMessage(err, "--modulus")
	}
	e, err := coef.ParseHex(cCtx.String("exponent"))
	if err != nil {
		return nil, errors.WithMessage(err, "--exponent")
	}

	modulus := carray.FromInt(n, false)
	bits := cCtx.Int("bits")
	if bits == 0 {
		bits = 8 * len(modulus)
	}

	return &keystore.Input{Bits: bits, Modulus: modulus, Exponent: e}, nil
}
