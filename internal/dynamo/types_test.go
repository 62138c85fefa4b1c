package dynamo

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"testing"
)

func TestGrid_Validate(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		want error
	}{
		{"empty", Grid{}, ErrGridTooShort},
		{"single", Grid{0}, ErrGridTooShort},
		{"two points", Grid{0, 1}, nil},
		{"non-uniform", Grid{0, 0.1, 0.5, 2}, nil},
		{"repeated", Grid{0, 1, 1}, ErrConfiguration},
		{"decreasing", Grid{0, 2, 1}, ErrConfiguration},
		{"with NaN", Grid{0, math.NaN()}, ErrConfiguration},
		{"with +Inf", Grid{0, math.Inf(1)}, ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGrid_Scale(t *testing.T) {
	g := Grid{0, 1, 2}
	s := g.Scale(0.5)
	if s[1] != 0.5 || s[2] != 1 {
		t.Errorf("Scale failed: got %v", s)
	}
	if g[2] != 2 {
		t.Error("Scale modified the receiver")
	}
	if s.Last() != 1 {
		t.Errorf("Last() = %v, want 1", s.Last())
	}
}

func TestTrajectory_IsValid(t *testing.T) {
	ok := Trajectory{Z: []float64{1, 2}, U: []float64{0, 1}}
	if !ok.IsValid() {
		t.Error("finite trajectory reported invalid")
	}
	z, u := ok.Final()
	if z != 2 || u != 1 {
		t.Errorf("Final() = (%v, %v), want (2, 1)", z, u)
	}

	bad := Trajectory{Z: []float64{1, 2}, U: []float64{0, math.Inf(-1)}}
	if bad.IsValid() {
		t.Error("trajectory with Inf reported valid")
	}
}

func TestDefaultSolveConfig(t *testing.T) {
	cfg := DefaultSolveConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.MaxIter != 20 {
		t.Errorf("expected 20 iterations, got %d", cfg.MaxIter)
	}

	bad := []SolveConfig{
		{Delta: 0, Tolerance: 1e-12, MaxIter: 20},
		{Delta: 2e-6, Tolerance: -1, MaxIter: 20},
		{Delta: 2e-6, Tolerance: 1e-12, MaxIter: 0},
		{Delta: math.NaN(), Tolerance: 1e-12, MaxIter: 20},
	}
	for _, c := range bad {
		if err := c.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("Validate(%+v) = %v, want ErrConfiguration", c, err)
		}
	}
}

func TestSolveError(t *testing.T) {
	err := &SolveError{Iterations: 20, ZMin: 0.5, Residual: 1e-3, Wrapped: ErrConvergence}
	expected := "dynamo: shooting did not converge (iterations=20 z_min=0.5 residual=0.001)"
	if err.Error() != expected {
		t.Errorf("SolveError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrConvergence) {
		t.Error("SolveError does not unwrap to ErrConvergence")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{nil, ""},
		{fmt.Errorf("theta: %w", ErrNumericDomain), "domain"},
		{&SolveError{Wrapped: ErrConvergence}, "convergence"},
		{fmt.Errorf("radius: %w", ErrConfiguration), "configuration"},
		{ErrGridTooShort, "configuration"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.kind {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.kind)
		}
	}
}

func TestParallelFor(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100} {
		var sum atomic.Int64
		seen := make([]int32, n)
		ParallelFor(n, 3, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
				sum.Add(int64(i))
			}
		})
		for i, c := range seen {
			if c != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, c)
			}
		}
		if want := int64(n * (n - 1) / 2); sum.Load() != want {
			t.Errorf("n=%d: sum %d, want %d", n, sum.Load(), want)
		}
	}
}
