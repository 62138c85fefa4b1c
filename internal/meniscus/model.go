package meniscus

import (
	"math"

	"github.com/san-kum/menisim/internal/dynamo"
	"github.com/san-kum/menisim/internal/shooting"
	"github.com/san-kum/menisim/internal/special"
	"gonum.org/v1/gonum/floats"
)

// Profile is a solved meniscus in physical units. R and Z are index-aligned;
// Slope is dz/dr, which is the same in scaled and physical units.
type Profile struct {
	R     []float64
	Z     []float64
	Slope []float64

	CapillaryLength float64
	ZMin            float64 // non-dimensional apex height
	UGoal           float64
	Iterations      int
	Residual        float64
}

func (p *Profile) Len() int { return len(p.R) }

// Model scales physical inputs for the shooting solver and back.
type Model struct {
	Solver *shooting.Solver
}

func New() *Model {
	return &Model{Solver: shooting.New()}
}

// Solve computes the profile for p with the default solver.
func Solve(p Params) (*Profile, error) {
	return New().Solve(p)
}

// RadialGrid returns n evenly spaced radii on [0, radius].
func RadialGrid(radius float64, n int) []float64 {
	r := floats.Span(make([]float64, n), 0, radius)
	r[n-1] = radius
	return r
}

// InitialGuess is the linearized apex height cos(theta)/I1(R/lc).
func InitialGuess(p Params, lc float64) float64 {
	return math.Cos(p.Theta()) / special.I1(p.Radius/lc)
}

func (m *Model) Solve(params Params) (*Profile, error) {
	p, err := params.Normalize()
	if err != nil {
		return nil, err
	}

	lc := p.CapillaryLength()
	r := RadialGrid(p.Radius, p.N)
	x := dynamo.Grid(r).Scale(1 / lc)
	uGoal := p.TargetSlope()

	res, err := m.Solver.Solve(Equations(), x, uGoal, InitialGuess(p, lc))
	if err != nil {
		return nil, err
	}

	z := make([]float64, p.N)
	floats.ScaleTo(z, lc, res.Trajectory.Z)
	slope := make([]float64, p.N)
	copy(slope, res.Trajectory.U)

	return &Profile{
		R:               r,
		Z:               z,
		Slope:           slope,
		CapillaryLength: lc,
		ZMin:            res.ZMin,
		UGoal:           uGoal,
		Iterations:      res.Iterations,
		Residual:        res.Residual,
	}, nil
}
