// Package sweep solves a meniscus over the cartesian product of parameter
// values.
package sweep

import (
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/menisim/internal/config"
	"github.com/san-kum/menisim/internal/dynamo"
	"github.com/san-kum/menisim/internal/experiment"
	"github.com/san-kum/menisim/internal/meniscus"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Sweep varies Names[i] over Ranges[i]. Names use the config keys
// (rho, gamma, theta_deg, R, g, n).
type Sweep struct {
	Names  []string
	Ranges [][]float64
	Logger log.FieldLogger
}

// Point is the outcome of one grid point. A failed solve keeps its Err and
// has no Metrics.
type Point struct {
	Values     map[string]float64
	Params     meniscus.Params
	Metrics    map[string]float64
	Iterations int
	Err        error
}

func New(names []string, ranges [][]float64) *Sweep {
	return &Sweep{Names: names, Ranges: ranges}
}

func (s *Sweep) validate() error {
	if len(s.Names) != len(s.Ranges) {
		return fmt.Errorf("%w: %d parameter names, %d ranges", dynamo.ErrConfiguration, len(s.Names), len(s.Ranges))
	}
	for i, name := range s.Names {
		if !slices.Contains(config.Keys, name) {
			return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrConfiguration, name)
		}
		if len(s.Ranges[i]) == 0 {
			return fmt.Errorf("%w: empty range for %q", dynamo.ErrConfiguration, name)
		}
		if slices.Index(s.Names, name) != i {
			return fmt.Errorf("%w: parameter %q repeated", dynamo.ErrConfiguration, name)
		}
	}
	return nil
}

// Size is the number of grid points.
func (s *Sweep) Size() int {
	if len(s.Ranges) == 0 {
		return 0
	}
	n := 1
	for _, r := range s.Ranges {
		n *= len(r)
	}
	return n
}

// values decodes a flat index into one value per name; the last name varies fastest.
func (s *Sweep) values(idx int) map[string]float64 {
	out := make(map[string]float64, len(s.Names))
	for i := len(s.Names) - 1; i >= 0; i-- {
		r := s.Ranges[i]
		out[s.Names[i]] = r[idx%len(r)]
		idx /= len(r)
	}
	return out
}

// Run solves every grid point starting from base. Points come back in grid
// order regardless of scheduling.
func (s *Sweep) Run(base config.Config) ([]Point, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	points := make([]Point, s.Size())
	dynamo.ParallelFor(len(points), 1, func(start, end int) {
		for i := start; i < end; i++ {
			points[i] = s.solve(base, s.values(i))
		}
	})

	if s.Logger != nil {
		failed := 0
		for _, p := range points {
			if p.Err != nil {
				failed++
			}
		}
		s.Logger.WithFields(log.Fields{"points": len(points), "failed": failed}).Info("sweep finished")
	}
	return points, nil
}

func (s *Sweep) solve(base config.Config, values map[string]float64) Point {
	cfg := base
	pt := Point{Values: values}
	for name, v := range values {
		if err := cfg.Meniscus.Set(name, v); err != nil {
			pt.Err = err
			return pt
		}
	}
	pt.Params = cfg.Params()

	exp := experiment.New(cfg)
	if err := exp.Setup(nil); err != nil {
		pt.Err = err
		return pt
	}
	res, err := exp.Run()
	if err != nil {
		pt.Err = err
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("values", values).Debug("sweep point failed")
		}
		return pt
	}
	pt.Metrics = res.Metrics
	pt.Iterations = res.Profile.Iterations
	return pt
}

// Best returns the successful point whose metric lies closest to target.
// ok is false when no point has the metric.
func Best(points []Point, metric string, target float64) (Point, bool) {
	var best Point
	bestDist := math.Inf(1)
	found := false
	for _, p := range points {
		if p.Err != nil {
			continue
		}
		v, has := p.Metrics[metric]
		if !has || math.IsNaN(v) {
			continue
		}
		if d := math.Abs(v - target); d < bestDist {
			best, bestDist, found = p, d, true
		}
	}
	return best, found
}

// Linspace returns n evenly spaced values on [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := floats.Span(make([]float64, n), lo, hi)
	out[n-1] = hi
	return out
}
