// Package dynamo provides the shared primitives of the meniscus solver.
//
// The package defines the types that flow between the numeric layers:
//
//   - [Grid]: strictly increasing non-dimensional radial positions
//   - [Derivs]: the dz/dx and du/dx right-hand sides as a capability pair
//   - [Stepper]: one fixed step of a coupled two-variable integrator
//   - [Trajectory]: index-aligned height and slope sequences
//   - [SolveConfig]: shooting tolerances and iteration cap
//
// # Example
//
//	sys := meniscus.Equations()
//	traj, err := integrators.Integrate(integrators.NewRK4(), sys, grid, zMin, 0)
//
// # Thread Safety
//
// Nothing in this package holds mutable shared state. Independent solves
// can run on separate goroutines; [ParallelFor] fans them out.
package dynamo
