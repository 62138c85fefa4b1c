package meniscus

import (
	"fmt"
	"math"

	"github.com/san-kum/menisim/internal/dynamo"
)

const (
	DefaultRho      = 1000.0
	DefaultGamma    = 0.072
	DefaultThetaDeg = 30.0
	DefaultRadius   = 0.01
	DefaultGravity  = 9.80665
	DefaultN        = 200

	// RhoFloor keeps the capillary length finite for vanishing density.
	RhoFloor = 1e-12
	// MinSamples is the smallest grid that still has one integration step.
	MinSamples = 2
	// MaxSamples bounds the grid so one solve stays within a few hundred MB.
	MaxSamples = 1_000_000
)

// Params are the physical inputs of one solve, in SI units except the
// contact angle, which is in degrees.
type Params struct {
	Rho      float64 `json:"rho"`       // liquid density, kg/m³
	Gamma    float64 `json:"gamma"`     // surface tension, N/m
	ThetaDeg float64 `json:"theta_deg"` // contact angle, degrees
	Radius   float64 `json:"R"`         // cylinder radius, m
	Gravity  float64 `json:"g"`         // gravitational acceleration, m/s²
	N        int     `json:"n"`         // radial samples
}

func DefaultParams() Params {
	return Params{
		Rho:      DefaultRho,
		Gamma:    DefaultGamma,
		ThetaDeg: DefaultThetaDeg,
		Radius:   DefaultRadius,
		Gravity:  DefaultGravity,
		N:        DefaultN,
	}
}

// Normalize clamps density and small sample counts and validates the rest.
// The receiver is not modified.
func (p Params) Normalize() (Params, error) {
	if math.IsNaN(p.Rho) || math.IsInf(p.Rho, 1) {
		return p, fmt.Errorf("%w: rho must be finite, got %g", dynamo.ErrConfiguration, p.Rho)
	}
	if p.Rho < RhoFloor {
		p.Rho = RhoFloor
	}
	if !positive(p.Gamma) {
		return p, fmt.Errorf("%w: gamma must be positive, got %g", dynamo.ErrConfiguration, p.Gamma)
	}
	if !positive(p.Gravity) {
		return p, fmt.Errorf("%w: g must be positive, got %g", dynamo.ErrConfiguration, p.Gravity)
	}
	if !positive(p.Radius) {
		return p, fmt.Errorf("%w: R must be positive, got %g", dynamo.ErrConfiguration, p.Radius)
	}
	if math.IsNaN(p.ThetaDeg) || p.ThetaDeg <= 0 || p.ThetaDeg >= 180 {
		return p, fmt.Errorf("%w: theta_deg must lie strictly between 0 and 180, got %g", dynamo.ErrNumericDomain, p.ThetaDeg)
	}
	if p.N > MaxSamples {
		return p, fmt.Errorf("%w: n must be at most %d, got %d", dynamo.ErrConfiguration, MaxSamples, p.N)
	}
	if p.N < MinSamples {
		p.N = MinSamples
	}
	return p, nil
}

// CapillaryLength returns sqrt(gamma/(rho*g)).
func (p Params) CapillaryLength() float64 {
	return math.Sqrt(p.Gamma / (p.Rho * p.Gravity))
}

// Theta returns the contact angle in radians.
func (p Params) Theta() float64 {
	return p.ThetaDeg * math.Pi / 180
}

// TargetSlope is the wall boundary condition cot(theta).
func (p Params) TargetSlope() float64 {
	return 1 / math.Tan(p.Theta())
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
