package meniscus

import (
	"github.com/san-kum/menisim/internal/special"
)

// LinearProfile returns the small-slope solution z = lc·cot(theta)·I0(r/lc)/I1(R/lc).
// It is accurate only near theta = 90 degrees and serves as a reference for
// the full solver.
func LinearProfile(params Params) ([]float64, []float64, error) {
	p, err := params.Normalize()
	if err != nil {
		return nil, nil, err
	}

	lc := p.CapillaryLength()
	amp := lc * p.TargetSlope() / special.I1(p.Radius/lc)

	r := RadialGrid(p.Radius, p.N)
	z := make([]float64, len(r))
	for i, ri := range r {
		z[i] = amp * special.I0(ri/lc)
	}
	return r, z, nil
}
