package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/sp301415/rsa2c/coef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const toyDump = `Public-Key: (16 bit)
Modulus:
    00:c5:a3
Exponent: 65537 (0x10001)
`

const toyOutput = `.moduloData =
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

func run(args ...string) (string, error) {
	var buf bytes.Buffer
	app := &cli.App{
		Name:     "rsa2c",
		Commands: commands,
		Writer:   &buf,
	}
	err := app.Run(append([]string{"rsa2c"}, args...))
	return buf.String(), err
}

func TestGenerate(t *testing.T) {
	t.Run("Modulus", func(t *testing.T) {
		out, err := run("gen", "--modulus", "c5a3", "--exponent", "0x10001")
		require.NoError(t, err)
		assert.Equal(t, toyOutput, out)
	})

	t.Run("KeyDump", func(t *testing.T) {
		dir := t.TempDir()
		keyPath := filepath.Join(dir, "rsa_public_generated.txt")
		outPath := filepath.Join(dir, "rsa_to_c_generated.txt")
		require.NoError(t, os.WriteFile(keyPath, []byte(toyDump), 0644))

		out, err := run("gen", "--key", keyPath, "-o", outPath)
		require.NoError(t, err)
		assert.Empty(t, out)

		written, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Equal(t, toyOutput, string(written))
	})

	t.Run("MissingInput", func(t *testing.T) {
		_, err := run("gen")
		assert.Error(t, err)
	})

	t.Run("PowerOfTwo", func(t *testing.T) {
		_, err := run("gen", "--modulus", "8000")
		assert.True(t, errors.Is(err, coef.ErrInvalidModulus), err)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := run("gen", "--modulus", "c5g3")
		assert.True(t, errors.Is(err, coef.ErrInvalidInput), err)
	})
}

func TestSelfTest(t *testing.T) {
	out, err := run("selftest", "--bits", "256", "--count", "4", "--seed", "rsa2c")
	require.NoError(t, err)
	assert.Contains(t, out, "4 moduli of 256 bits")
}
