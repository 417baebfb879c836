package flux

import (
	"errors"
	"fmt"
)

// Domain errors for field-line operations.
var (
	// ErrUnsupportedGeometry indicates an unrecognized geometry flag.
	ErrUnsupportedGeometry = errors.New("flux: unsupported geometry")

	// ErrOutsideVolume indicates a radial coordinate outside the volume's
	// valid range.
	ErrOutsideVolume = errors.New("flux: coordinate outside volume")

	// ErrBadVolume indicates a volume index outside the equilibrium's range.
	ErrBadVolume = errors.New("flux: volume index out of range")

	// ErrDimensionMismatch indicates a state of the wrong length for the
	// requested evaluation.
	ErrDimensionMismatch = errors.New("flux: state dimension mismatch")

	// ErrStepTooSmall indicates an adaptive step shrank below its minimum.
	ErrStepTooSmall = errors.New("flux: adaptive step below minimum")
)

// EvalError wraps an oracle failure with the zeta at which it occurred.
type EvalError struct {
	Zeta    float64
	Wrapped error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("eval at zeta=%.6f: %v", e.Zeta, e.Wrapped)
}

func (e *EvalError) Unwrap() error {
	return e.Wrapped
}
