// Package meniscus computes the equilibrium shape of a liquid surface inside
// a cylinder of radius R.
//
// The profile z(r) satisfies the axisymmetric Young-Laplace equation. Lengths
// are scaled by the capillary length lc = sqrt(gamma/(rho*g)), which turns
// the balance of gravity and surface tension into
//
//	z = u'/(1+u²)^(3/2) + u/(x·(1+u²)^(1/2)),   u = dz/dx
//
// with u(0) = 0 on the axis and u(R/lc) = cot(theta) at the wall. The
// unknown apex height z(0) is found by shooting, seeded from the linearized
// solution z = A·I0(x), u = A·I1(x).
//
// # Example
//
//	p := meniscus.DefaultParams()
//	p.ThetaDeg = 45
//	prof, err := meniscus.Solve(p)
//	if errors.Is(err, dynamo.ErrNumericDomain) {
//	    // contact angle of 0 or 180 degrees
//	}
//
// Solve keeps no state between calls and is safe for concurrent use.
package meniscus
