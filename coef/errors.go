package coef

import (
	"github.com/pkg/errors"
)

// Error kinds returned by this module.
// Use errors.Is to test for them; the returned errors carry extra context.
var (
	// ErrInvalidInput is returned when hex or decimal text cannot be parsed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidModulus is returned when the modulus is non-positive, even, or a power of two.
	ErrInvalidModulus = errors.New("invalid modulus")
	// ErrLengthMismatch is returned when the modulus byte count disagrees with the declared bit length.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrCheckFailed is returned when derived coefficients fail the reduction self check.
	ErrCheckFailed = errors.New("coefficient check failed")
)
