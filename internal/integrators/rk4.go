package integrators

import "github.com/san-kum/menisim/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta step applied jointly to (z, u).
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(sys dynamo.Derivs, x, h, z, u float64) (float64, float64) {
	half := 0.5 * h

	k1 := sys.DzDx(x, z, u)
	l1 := sys.DuDx(x, z, u)

	zs, us := z+half*k1, u+half*l1
	k2 := sys.DzDx(x+half, zs, us)
	l2 := sys.DuDx(x+half, zs, us)

	zs, us = z+half*k2, u+half*l2
	k3 := sys.DzDx(x+half, zs, us)
	l3 := sys.DuDx(x+half, zs, us)

	zs, us = z+h*k3, u+h*l3
	k4 := sys.DzDx(x+h, zs, us)
	l4 := sys.DuDx(x+h, zs, us)

	h6 := h / 6.0
	return z + h6*(k1+2*k2+2*k3+k4), u + h6*(l1+2*l2+2*l3+l4)
}
