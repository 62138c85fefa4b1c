package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for solve operations.
var (
	// ErrConfiguration indicates invalid or degenerate physical input.
	ErrConfiguration = errors.New("dynamo: invalid configuration")

	// ErrConvergence indicates the shooting iteration did not meet its tolerance.
	ErrConvergence = errors.New("dynamo: shooting did not converge")

	// ErrNumericDomain indicates an input outside the domain of the boundary condition.
	ErrNumericDomain = errors.New("dynamo: input outside numeric domain")

	// ErrGridTooShort indicates a grid with fewer than two points.
	ErrGridTooShort = errors.New("dynamo: grid needs at least two points")
)

// SolveError wraps an error with shooting context.
type SolveError struct {
	Iterations int
	ZMin       float64
	Residual   float64
	Wrapped    error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%v (iterations=%d z_min=%g residual=%g)", e.Wrapped, e.Iterations, e.ZMin, e.Residual)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}

// Kind names the error class of err for transport to callers that cannot
// match sentinels, e.g. a websocket client.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNumericDomain):
		return "domain"
	case errors.Is(err, ErrConvergence):
		return "convergence"
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrGridTooShort):
		return "configuration"
	default:
		return "internal"
	}
}
