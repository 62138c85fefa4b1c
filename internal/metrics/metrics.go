package metrics

import (
	"math"

	"github.com/san-kum/menisim/internal/meniscus"
)

// Metric accumulates a scalar over the points of a profile, in order of
// increasing radius.
type Metric interface {
	Name() string
	Observe(r, z, slope float64)
	Value() float64
	Reset()
}

// Defaults returns a fresh set of the standard profile metrics.
func Defaults() []Metric {
	return []Metric{
		NewApexHeight(),
		NewWallHeight(),
		NewRise(),
		NewVolume(),
		NewMaxSlope(),
	}
}

// Evaluate resets each metric, feeds it every point of prof and collects the values.
func Evaluate(prof *meniscus.Profile, ms ...Metric) map[string]float64 {
	if len(ms) == 0 {
		ms = Defaults()
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i := range prof.R {
			m.Observe(prof.R[i], prof.Z[i], prof.Slope[i])
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// ApexHeight is the height on the axis.
type ApexHeight struct {
	z    float64
	seen bool
}

func NewApexHeight() *ApexHeight { return &ApexHeight{} }

func (a *ApexHeight) Name() string { return "apex_height" }

func (a *ApexHeight) Observe(r, z, slope float64) {
	if !a.seen {
		a.z, a.seen = z, true
	}
}

func (a *ApexHeight) Value() float64 { return a.z }
func (a *ApexHeight) Reset()         { *a = ApexHeight{} }

// WallHeight is the height at the last observed radius.
type WallHeight struct {
	z float64
}

func NewWallHeight() *WallHeight { return &WallHeight{} }

func (w *WallHeight) Name() string                { return "wall_height" }
func (w *WallHeight) Observe(r, z, slope float64) { w.z = z }
func (w *WallHeight) Value() float64              { return w.z }
func (w *WallHeight) Reset()                      { w.z = 0 }

// Rise is the climb of the contact line above the apex; negative for a
// non-wetting liquid.
type Rise struct {
	apex, wall float64
	seen       bool
}

func NewRise() *Rise { return &Rise{} }

func (m *Rise) Name() string { return "rise" }

func (m *Rise) Observe(r, z, slope float64) {
	if !m.seen {
		m.apex, m.seen = z, true
	}
	m.wall = z
}

func (m *Rise) Value() float64 { return m.wall - m.apex }
func (m *Rise) Reset()         { *m = Rise{} }

// Volume integrates 2πr·(z - z_apex) with the trapezoidal rule: the liquid
// held between the apex plane and the meniscus.
type Volume struct {
	apex        float64
	prevR, prev float64
	total       float64
	seen        bool
}

func NewVolume() *Volume { return &Volume{} }

func (v *Volume) Name() string { return "volume" }

func (v *Volume) Observe(r, z, slope float64) {
	f := 2 * math.Pi * r
	if !v.seen {
		v.apex, v.seen = z, true
		v.prevR, v.prev = r, f*(z-v.apex)
		return
	}
	cur := f * (z - v.apex)
	v.total += 0.5 * (r - v.prevR) * (cur + v.prev)
	v.prevR, v.prev = r, cur
}

func (v *Volume) Value() float64 { return v.total }
func (v *Volume) Reset()         { *v = Volume{} }

// MaxSlope is the steepest |dz/dr| along the profile.
type MaxSlope struct {
	max float64
}

func NewMaxSlope() *MaxSlope { return &MaxSlope{} }

func (m *MaxSlope) Name() string { return "max_slope" }

func (m *MaxSlope) Observe(r, z, slope float64) {
	m.max = math.Max(m.max, math.Abs(slope))
}

func (m *MaxSlope) Value() float64 { return m.max }
func (m *MaxSlope) Reset()         { m.max = 0 }
