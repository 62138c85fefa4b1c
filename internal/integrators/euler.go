package integrators

import "github.com/san-kum/menisim/internal/dynamo"

// Euler is the explicit first-order step, kept as a reference for RK4.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.Derivs, x, h, z, u float64) (float64, float64) {
	return z + h*sys.DzDx(x, z, u), u + h*sys.DuDx(x, z, u)
}
