package meniscus

import (
	"math"

	"github.com/san-kum/menisim/internal/dynamo"
)

// HeightRate is dz/dx.
func HeightRate(x, z, u float64) float64 {
	return u
}

// SlopeRate is du/dx from the non-dimensional Young-Laplace balance. On the
// axis the u/x curvature term is dropped; this relies on u(0) = 0.
func SlopeRate(x, z, u float64) float64 {
	q := 1 + u*u
	rate := q * math.Sqrt(q) * z
	if x == 0 {
		return rate
	}
	return rate - q*u/x
}

// Equations returns the meniscus right-hand sides as a derivative pair.
func Equations() dynamo.Derivs {
	return dynamo.Derivs{
		DzDx: HeightRate,
		DuDx: SlopeRate,
	}
}
