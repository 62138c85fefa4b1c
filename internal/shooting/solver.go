// Package shooting turns the meniscus boundary-value problem into a search
// over the unknown initial height.
package shooting

import (
	"fmt"
	"math"

	"github.com/san-kum/menisim/internal/dynamo"
	"github.com/san-kum/menisim/internal/integrators"
	log "github.com/sirupsen/logrus"
)

// Solver finds z(0) such that the slope at the last grid point hits a target.
// The zero value is not usable; start from New.
type Solver struct {
	Stepper dynamo.Stepper
	Config  dynamo.SolveConfig
	Logger  log.FieldLogger
}

// Result of a converged search. Trajectory is the integration from ZMin.
type Result struct {
	ZMin       float64
	Iterations int
	Residual   float64
	Trajectory dynamo.Trajectory
}

func New() *Solver {
	return &Solver{
		Stepper: integrators.NewRK4(),
		Config:  dynamo.DefaultSolveConfig(),
	}
}

// residual integrates from (zMin, 0) and returns u(x_last) - uGoal.
func (s *Solver) residual(sys dynamo.Derivs, grid dynamo.Grid, uGoal, zMin float64) (float64, dynamo.Trajectory, error) {
	traj, err := integrators.Integrate(s.Stepper, sys, grid, zMin, 0)
	if err != nil {
		return 0, traj, err
	}
	_, uLast := traj.Final()
	return uLast - uGoal, traj, nil
}

// Solve runs the finite-difference Newton iteration starting from zMinInit.
// Each iteration perturbs z_min by Delta to estimate the residual's
// derivative and steps by the Newton correction until the correction drops
// below Tolerance. Reaching MaxIter is an error: no unconverged profile is
// ever returned.
func (s *Solver) Solve(sys dynamo.Derivs, grid dynamo.Grid, uGoal, zMinInit float64) (*Result, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(uGoal) || math.IsInf(uGoal, 0) {
		return nil, fmt.Errorf("%w: target slope %g", dynamo.ErrNumericDomain, uGoal)
	}
	if math.IsNaN(zMinInit) || math.IsInf(zMinInit, 0) {
		return nil, fmt.Errorf("%w: initial guess %g", dynamo.ErrConfiguration, zMinInit)
	}

	delta := s.Config.Delta
	zMin := zMinInit
	bc := math.NaN()

	for iter := 1; iter <= s.Config.MaxIter; iter++ {
		var err error
		bc, _, err = s.residual(sys, grid, uGoal, zMin)
		if err != nil {
			return nil, err
		}

		step := 0.0
		if bc != 0 {
			bcPert, _, err := s.residual(sys, grid, uGoal, zMin+delta)
			if err != nil {
				return nil, err
			}
			if !isFinite(bc) || !isFinite(bcPert) || bcPert == bc {
				return nil, &dynamo.SolveError{Iterations: iter, ZMin: zMin, Residual: bc, Wrapped: dynamo.ErrConvergence}
			}
			// (bcPert/bc - 1)/delta is d(ln bc)/dz, so the Newton step is its inverse.
			step = delta * bc / (bcPert - bc)
			zMin -= step
		}

		if s.Logger != nil {
			s.Logger.WithFields(log.Fields{
				"iteration": iter,
				"z_min":     zMin,
				"residual":  bc,
				"step":      step,
			}).Debug("shooting iteration")
		}

		if math.Abs(step) < s.Config.Tolerance {
			final, traj, err := s.residual(sys, grid, uGoal, zMin)
			if err != nil {
				return nil, err
			}
			if !traj.IsValid() {
				return nil, &dynamo.SolveError{Iterations: iter, ZMin: zMin, Residual: final, Wrapped: dynamo.ErrConvergence}
			}
			return &Result{
				ZMin:       zMin,
				Iterations: iter,
				Residual:   final,
				Trajectory: traj,
			}, nil
		}
	}

	return nil, &dynamo.SolveError{Iterations: s.Config.MaxIter, ZMin: zMin, Residual: bc, Wrapped: dynamo.ErrConvergence}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
