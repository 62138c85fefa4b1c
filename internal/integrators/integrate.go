package integrators

import (
	"fmt"

	"github.com/san-kum/menisim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Integrate advances (z0, u0) across every point of grid with one fixed step
// per interval. Each step uses its own width h = grid[j+1] - grid[j].
func Integrate(s dynamo.Stepper, sys dynamo.Derivs, grid dynamo.Grid, z0, u0 float64) (dynamo.Trajectory, error) {
	if err := grid.Validate(); err != nil {
		return dynamo.Trajectory{}, err
	}
	if sys.DzDx == nil || sys.DuDx == nil {
		return dynamo.Trajectory{}, fmt.Errorf("%w: derivative pair is incomplete", dynamo.ErrConfiguration)
	}

	n := len(grid)
	traj := dynamo.Trajectory{
		Z: make([]float64, n),
		U: make([]float64, n),
	}
	traj.Z[0], traj.U[0] = z0, u0

	for j := 0; j < n-1; j++ {
		h := grid[j+1] - grid[j]
		traj.Z[j+1], traj.U[j+1] = s.Step(sys, grid[j], h, traj.Z[j], traj.U[j])
	}

	return traj, nil
}

// Uniform returns n evenly spaced points on [0, length]. A single point
// grid is just the origin.
func Uniform(length float64, n int) dynamo.Grid {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return dynamo.Grid{0}
	}
	g := floats.Span(make(dynamo.Grid, n), 0, length)
	g[n-1] = length
	return g
}
