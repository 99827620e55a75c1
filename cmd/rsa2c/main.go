package main

import (
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/urfave/cli/v2"
)

var commands = []*cli.Command{
	{
		Name:  "gen",
		Usage: "Generate the public key storage initializer",
		Description: heredoc.Doc(`
			Reads an RSA public key, derives the Barrett coefficient, the binary
			inverse modulo and R-bar from its modulus, and prints the five fields
			of the key storage structure as C initializer lists.

			The key is read either from a text dump, as printed by
			"openssl rsa -text -pubin -noout -in key.pub", or from --modulus and
			--exponent given in hex.

			Example:
			  openssl rsa -text -pubin -noout -in rsa_public.pem | rsa2c gen --key - -o rsa_to_c_generated.txt
		`),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "key",
				Aliases: []string{"k"},
				Usage:   "Path to the key dump, or - for stdin",
				EnvVars: []string{"RSA2C_KEY"},
			},
			&cli.StringFlag{
				Name:  "modulus",
				Usage: "Modulus in hex, used when --key is not given",
			},
			&cli.StringFlag{
				Name:  "exponent",
				Usage: "Public exponent in hex, used with --modulus",
				Value: "0x10001",
			},
			&cli.IntFlag{
				Name:  "bits",
				Usage: "Declared key length in bits, used with --modulus (default: modulus length rounded up to bytes)",
			},
			&cli.BoolFlag{
				Name:    "norev",
				Usage:   "Keep byte lists big-endian instead of reversing them",
				EnvVars: []string{"RSA2C_NOREV"},
			},
			&cli.BoolFlag{
				Name:  "fixed-width",
				Usage: "Pad coefficients to the sizes of the key storage fields",
			},
			&cli.BoolFlag{
				Name:  "no-verify",
				Usage: "Skip the Montgomery exponentiation self check",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o", "out"},
				Usage:   "Output path, stdout if empty",
				EnvVars: []string{"RSA2C_OUT"},
			},
		},
		Action: Generate,
	},
	{
		Name:  "selftest",
		Usage: "Derive and check coefficients for random moduli",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "bits",
				Usage: "Bit length of the sampled moduli",
				Value: 2048,
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of moduli to sample",
				Value:   8,
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "Seed for the sampler, random if empty",
			},
		},
		Action: SelfTest,
	},
}

func main() {
	app := &cli.App{
		Name:  "rsa2c",
		Usage: "RSA public key to C key storage converter",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable debug logging",
				EnvVars: []string{"RSA2C_VERBOSE"},
			},
		},
		Before: func(cCtx *cli.Context) error {
			log.SetHandler(clihandler.Default)
			if cCtx.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: commands,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Error("rsa2c failed")
		os.Exit(1)
	}
}
