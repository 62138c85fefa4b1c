package meniscus

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/menisim/internal/dynamo"
)

func TestHeightRate(t *testing.T) {
	if got := HeightRate(1.3, 0.4, -0.7); got != -0.7 {
		t.Errorf("HeightRate = %v, want the slope -0.7", got)
	}
}

func TestSlopeRateAxis(t *testing.T) {
	// On the axis the curvature term is dropped: du/dx = z.
	if got := SlopeRate(0, 0.25, 0); got != 0.25 {
		t.Errorf("SlopeRate(0, 0.25, 0) = %v, want 0.25", got)
	}
	if math.IsNaN(SlopeRate(0, 1, 0)) || math.IsInf(SlopeRate(0, 1, 0), 0) {
		t.Error("SlopeRate must be finite on the axis")
	}
}

func TestSlopeRateOffAxis(t *testing.T) {
	x, z, u := 0.5, 0.2, 0.3
	q := 1 + u*u
	want := math.Pow(q, 1.5)*z - q*u/x
	if got := SlopeRate(x, z, u); math.Abs(got-want) > 1e-15 {
		t.Errorf("SlopeRate = %.17g, want %.17g", got, want)
	}
}

func TestSlopeRateFlatSurface(t *testing.T) {
	for _, x := range []float64{0, 0.1, 2} {
		if got := SlopeRate(x, 0, 0); got != 0 {
			t.Errorf("flat surface at x=%v should stay flat, got du/dx=%v", x, got)
		}
	}
}

func TestEquationsPair(t *testing.T) {
	sys := Equations()
	if sys.DzDx(1, 2, 3) != HeightRate(1, 2, 3) || sys.DuDx(1, 2, 3) != SlopeRate(1, 2, 3) {
		t.Error("Equations does not expose HeightRate/SlopeRate")
	}
}

func TestParamsNormalize(t *testing.T) {
	p := DefaultParams()
	p.Rho = -5
	p.N = 0

	got, err := p.Normalize()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if got.Rho != RhoFloor {
		t.Errorf("rho not clamped to floor: %v", got.Rho)
	}
	if got.N != MinSamples {
		t.Errorf("n not clamped: %d", got.N)
	}
	if p.Rho != -5 {
		t.Error("Normalize modified its receiver")
	}
}

func TestParamsValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"zero theta", func(p *Params) { p.ThetaDeg = 0 }, dynamo.ErrNumericDomain},
		{"straight theta", func(p *Params) { p.ThetaDeg = 180 }, dynamo.ErrNumericDomain},
		{"negative theta", func(p *Params) { p.ThetaDeg = -10 }, dynamo.ErrNumericDomain},
		{"NaN theta", func(p *Params) { p.ThetaDeg = math.NaN() }, dynamo.ErrNumericDomain},
		{"zero radius", func(p *Params) { p.Radius = 0 }, dynamo.ErrConfiguration},
		{"negative radius", func(p *Params) { p.Radius = -0.01 }, dynamo.ErrConfiguration},
		{"infinite radius", func(p *Params) { p.Radius = math.Inf(1) }, dynamo.ErrConfiguration},
		{"zero gamma", func(p *Params) { p.Gamma = 0 }, dynamo.ErrConfiguration},
		{"zero gravity", func(p *Params) { p.Gravity = 0 }, dynamo.ErrConfiguration},
		{"NaN rho", func(p *Params) { p.Rho = math.NaN() }, dynamo.ErrConfiguration},
		{"too many samples", func(p *Params) { p.N = MaxSamples + 1 }, dynamo.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if _, err := p.Normalize(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCapillaryLength(t *testing.T) {
	p := DefaultParams()
	want := math.Sqrt(0.072 / (1000 * 9.80665))
	if got := p.CapillaryLength(); math.Abs(got-want) > 1e-18 {
		t.Errorf("CapillaryLength = %v, want %v", got, want)
	}
}

func TestTargetSlope(t *testing.T) {
	p := DefaultParams()
	p.ThetaDeg = 45
	if got := p.TargetSlope(); math.Abs(got-1) > 1e-15 {
		t.Errorf("cot(45°) = %v, want 1", got)
	}
}

func TestInitialGuess(t *testing.T) {
	p := DefaultParams()
	lc := p.CapillaryLength()
	got := InitialGuess(p, lc)
	// cos(30°)/I1(3.69) from the linearized solution.
	if math.Abs(got-0.1174654) > 1e-6 {
		t.Errorf("InitialGuess = %v, want ~0.1174654", got)
	}
}

func TestRadialGrid(t *testing.T) {
	r := RadialGrid(0.003, 7)
	if len(r) != 7 || r[0] != 0 || r[6] != 0.003 {
		t.Errorf("RadialGrid endpoints wrong: %v", r)
	}
}
