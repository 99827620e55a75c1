// Package keydump parses the text dump of an RSA public key,
// as printed by "openssl rsa -text -pubin -noout".
//
// A dump looks like this:
//
//	Public-Key: (2048 bit)
//	Modulus:
//	    00:c3:5d:...
//	    ...
//	Exponent: 65537 (0x10001)
package keydump

import (
	"bufio"
	"io"
	"math/big"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/sp301415/rsa2c/coef"
)

// Key is a public key read from a dump.
type Key struct {
	// Bits is the declared key length in bits.
	Bits int
	// Modulus is the modulus, most significant byte first, as found in the dump.
	// It may carry one extra leading zero byte.
	Modulus []byte
	// Exponent is the public exponent.
	Exponent *big.Int
}

// Parse reads a key dump from r.
//
// Returns coef.ErrInvalidInput if the key length, modulus or exponent
// is missing or malformed.
func Parse(r io.Reader) (*Key, error) {
	key := &Key{}
	inModulus := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()

		switch {
		case strings.Contains(line, "Public-Key"):
			bits, err := parseBits(line)
			if err != nil {
				return nil, err
			}
			key.Bits = bits
		case strings.Contains(line, "Modulus"):
			inModulus = true
			continue
		case strings.Contains(line, "Exponent"):
			inModulus = false
			e, err := parseExponent(line)
			if err != nil {
				return nil, err
			}
			key.Exponent = e
		}

		if !inModulus {
			continue
		}

		b, err := parseModulusLine(line)
		if err != nil {
			return nil, err
		}
		key.Modulus = append(key.Modulus, b...)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read key dump")
	}

	switch {
	case key.Bits == 0:
		return nil, errors.Wrap(coef.ErrInvalidInput, "key length not found in dump")
	case len(key.Modulus) == 0:
		return nil, errors.Wrap(coef.ErrInvalidInput, "modulus not found in dump")
	case key.Exponent == nil:
		return nil, errors.Wrap(coef.ErrInvalidInput, "exponent not found in dump")
	}

	return key, nil
}

// ParseFile reads a key dump from the named file.
func ParseFile(path string) (*Key, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open key dump %s", path)
	}
	defer f.Close()

	key, err := Parse(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return key, nil
}

func parseBits(line string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, line)

	bits, err := coef.ParseDecimal(digits)
	if err != nil {
		return 0, errors.WithMessagef(err, "key length line %q", line)
	}
	if !bits.IsInt64() || bits.Int64() <= 0 || bits.Int64() > 1<<20 {
		return 0, errors.Wrapf(coef.ErrInvalidInput, "key length out of range in %q", line)
	}
	return int(bits.Int64()), nil
}

// parseExponent reads "Exponent: 65537 (0x10001)".
// The hex form in parentheses is preferred, the decimal form is the fallback.
func parseExponent(line string) (*big.Int, error) {
	if i := strings.Index(line, "(0x"); i >= 0 {
		j := strings.Index(line[i:], ")")
		if j < 0 {
			return nil, errors.Wrapf(coef.ErrInvalidInput, "unterminated exponent in %q", line)
		}
		e, err := coef.ParseHex(line[i+1 : i+j])
		if err != nil {
			return nil, errors.WithMessagef(err, "exponent line %q", line)
		}
		return e, nil
	}

	_, rest, ok := strings.Cut(line, ":")
	fields := strings.Fields(rest)
	if !ok || len(fields) == 0 {
		return nil, errors.Wrapf(coef.ErrInvalidInput, "exponent value not found in %q", line)
	}
	e, err := coef.ParseDecimal(fields[0])
	if err != nil {
		return nil, errors.WithMessagef(err, "exponent line %q", line)
	}
	return e, nil
}

// parseModulusLine reads one line of colon-separated byte pairs, such as "00:c3:5d:".
func parseModulusLine(line string) ([]byte, error) {
	var out []byte
	for _, tok := range strings.Split(strings.TrimSpace(line), ":") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if len(tok) != 2 {
			return nil, errors.Wrapf(coef.ErrInvalidInput, "modulus byte %q is not two hex digits", tok)
		}

		b, err := coef.HexBytes(tok)
		if err != nil {
			return nil, errors.WithMessagef(err, "modulus line %q", line)
		}
		out = append(out, b...)
	}
	return out, nil
}
