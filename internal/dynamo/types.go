package dynamo

import (
	"fmt"
	"math"
)

// Grid holds non-dimensional radial positions, x[0] = 0 and strictly increasing.
type Grid []float64

// Validate checks the grid has at least two strictly increasing finite points.
func (g Grid) Validate() error {
	if len(g) < 2 {
		return ErrGridTooShort
	}
	for i, x := range g {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: grid point %d is not finite", ErrConfiguration, i)
		}
		if i > 0 && x <= g[i-1] {
			return fmt.Errorf("%w: grid not strictly increasing at index %d", ErrConfiguration, i)
		}
	}
	return nil
}

// Last returns the far boundary of the grid.
func (g Grid) Last() float64 {
	return g[len(g)-1]
}

// Scale returns a new grid with every point multiplied by factor.
func (g Grid) Scale(factor float64) Grid {
	out := make(Grid, len(g))
	for i, x := range g {
		out[i] = x * factor
	}
	return out
}

// DerivFunc is one right-hand side of the coupled system.
type DerivFunc func(x, z, u float64) float64

// Derivs pairs dz/dx and du/dx. Both must be pure.
type Derivs struct {
	DzDx DerivFunc
	DuDx DerivFunc
}

// Stepper advances (z, u) from x by one step of size h.
type Stepper interface {
	Step(sys Derivs, x, h, z, u float64) (float64, float64)
}

// Trajectory is the height and slope along a grid.
type Trajectory struct {
	Z []float64
	U []float64
}

func (t Trajectory) Len() int { return len(t.Z) }

// Final returns the height and slope at the last grid point.
func (t Trajectory) Final() (z, u float64) {
	n := len(t.Z)
	return t.Z[n-1], t.U[n-1]
}

// IsValid reports whether every value is finite.
func (t Trajectory) IsValid() bool {
	for i := range t.Z {
		if math.IsNaN(t.Z[i]) || math.IsInf(t.Z[i], 0) || math.IsNaN(t.U[i]) || math.IsInf(t.U[i], 0) {
			return false
		}
	}
	return true
}

type SolveConfig struct {
	Delta     float64
	Tolerance float64
	MaxIter   int
}

func DefaultSolveConfig() SolveConfig {
	return SolveConfig{
		Delta:     2e-6,
		Tolerance: 1e-12,
		MaxIter:   20,
	}
}

// Validate rejects tuning values that would make the shooting loop meaningless.
func (c SolveConfig) Validate() error {
	if !(c.Delta > 0) || math.IsInf(c.Delta, 0) {
		return fmt.Errorf("%w: delta must be positive, got %g", ErrConfiguration, c.Delta)
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrConfiguration, c.Tolerance)
	}
	if c.MaxIter < 1 {
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrConfiguration, c.MaxIter)
	}
	return nil
}
