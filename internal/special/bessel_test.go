package special

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference values from the power series, accurate to double precision.
var i1Table = []struct {
	x, want float64
}{
	{0.5, 0.25789430539089625},
	{1, 0.565159103992485},
	{2, 1.5906368546373288},
	{3.75, 7.780015229824416},
	{5, 24.33564214245053},
	{10, 2670.988303701255},
}

var i0Table = []struct {
	x, want float64
}{
	{0, 1},
	{0.5, 1.0634833707413236},
	{1, 1.2660658777520082},
	{2, 2.279585302336067},
	{3.75, 9.118945860844565},
	{5, 27.23987182360445},
	{10, 2815.716628466255},
}

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}

func TestI1_Table(t *testing.T) {
	for _, tt := range i1Table {
		got := I1(tt.x)
		assert.Lessf(t, relErr(got, tt.want), 1e-6, "I1(%g) = %.10g, want %.10g", tt.x, got, tt.want)
	}
}

func TestI1_Odd(t *testing.T) {
	for _, tt := range i1Table {
		require.Equal(t, -I1(tt.x), I1(-tt.x), "I1 must be odd at %g", tt.x)
	}
	assert.Zero(t, I1(0))
}

func TestI1_BranchContinuity(t *testing.T) {
	below := I1(math.Nextafter(branch, 0))
	above := I1(branch)
	assert.Less(t, relErr(below, above), 1e-6)
}

func TestI1_Overflow(t *testing.T) {
	assert.True(t, math.IsInf(I1(1000), 1))
	assert.True(t, math.IsInf(I1(-1000), -1))
}

func TestI0_Table(t *testing.T) {
	for _, tt := range i0Table {
		got := I0(tt.x)
		assert.Lessf(t, relErr(got, tt.want), 1e-6, "I0(%g) = %.10g, want %.10g", tt.x, got, tt.want)
		assert.Equal(t, got, I0(-tt.x), "I0 must be even")
	}
}

func BenchmarkI1(b *testing.B) {
	x := 0.0
	for i := 0; i < b.N; i++ {
		x += I1(float64(i%200) * 0.05)
	}
	_ = x
}
