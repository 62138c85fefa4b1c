package sweep

import (
	"errors"
	"testing"

	"github.com/san-kum/menisim/internal/config"
	"github.com/san-kum/menisim/internal/dynamo"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() config.Config {
	cfg := *config.DefaultConfig()
	cfg.Meniscus.N = 50
	return cfg
}

func TestSweepGridOrder(t *testing.T) {
	s := New([]string{"theta_deg", "R"}, [][]float64{{30, 60}, {0.005, 0.01, 0.02}})
	require.Equal(t, 6, s.Size())

	points, err := s.Run(baseConfig())
	require.NoError(t, err)
	require.Len(t, points, 6)

	assert.Equal(t, map[string]float64{"theta_deg": 30, "R": 0.005}, points[0].Values)
	assert.Equal(t, map[string]float64{"theta_deg": 30, "R": 0.01}, points[1].Values)
	assert.Equal(t, map[string]float64{"theta_deg": 60, "R": 0.02}, points[5].Values)
	for _, p := range points {
		require.NoError(t, p.Err)
		assert.Equal(t, p.Values["theta_deg"], p.Params.ThetaDeg)
		assert.Equal(t, p.Values["R"], p.Params.Radius)
		assert.Positive(t, p.Metrics["rise"])
		assert.Positive(t, p.Iterations)
	}
}

func TestSweepRiseFallsWithAngle(t *testing.T) {
	s := New([]string{"theta_deg"}, [][]float64{Linspace(20, 80, 4)})
	points, err := s.Run(baseConfig())
	require.NoError(t, err)

	for i := 1; i < len(points); i++ {
		require.NoError(t, points[i].Err)
		assert.Less(t, points[i].Metrics["rise"], points[i-1].Metrics["rise"])
	}
}

func TestSweepRecordsFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := New([]string{"theta_deg"}, [][]float64{{0, 45, 180}})
	s.Logger = logger

	points, err := s.Run(baseConfig())
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.True(t, errors.Is(points[0].Err, dynamo.ErrNumericDomain))
	assert.NoError(t, points[1].Err)
	assert.True(t, errors.Is(points[2].Err, dynamo.ErrNumericDomain))
	assert.Nil(t, points[0].Metrics)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, 2, hook.LastEntry().Data["failed"])
}

func TestSweepValidation(t *testing.T) {
	cases := map[string]*Sweep{
		"mismatch": New([]string{"theta_deg"}, nil),
		"unknown":  New([]string{"viscosity"}, [][]float64{{1}}),
		"empty":    New([]string{"R"}, [][]float64{{}}),
		"repeated": New([]string{"R", "R"}, [][]float64{{0.01}, {0.02}}),
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Run(baseConfig())
			assert.True(t, errors.Is(err, dynamo.ErrConfiguration))
		})
	}
}

func TestBest(t *testing.T) {
	points := []Point{
		{Values: map[string]float64{"theta_deg": 1}, Metrics: map[string]float64{"rise": 1.0}},
		{Values: map[string]float64{"theta_deg": 2}, Metrics: map[string]float64{"rise": 2.1}},
		{Values: map[string]float64{"theta_deg": 3}, Err: dynamo.ErrConvergence},
		{Values: map[string]float64{"theta_deg": 4}, Metrics: map[string]float64{"rise": 3.0}},
	}

	p, ok := Best(points, "rise", 2.0)
	require.True(t, ok)
	assert.Equal(t, 2.0, p.Values["theta_deg"])

	_, ok = Best(points, "volume", 1)
	assert.False(t, ok)
	_, ok = Best(nil, "rise", 1)
	assert.False(t, ok)
}

func TestBestRecoversAngle(t *testing.T) {
	cfg := baseConfig()
	cfg.Meniscus.ThetaDeg = 50
	ref := New([]string{"theta_deg"}, [][]float64{{50}})
	refPoints, err := ref.Run(cfg)
	require.NoError(t, err)
	target := refPoints[0].Metrics["rise"]

	s := New([]string{"theta_deg"}, [][]float64{Linspace(30, 70, 5)})
	points, err := s.Run(cfg)
	require.NoError(t, err)

	p, ok := Best(points, "rise", target)
	require.True(t, ok)
	assert.Equal(t, 50.0, p.Values["theta_deg"])
}

func TestLinspace(t *testing.T) {
	assert.Nil(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{2}, Linspace(2, 5, 1))
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5))
	assert.Equal(t, []float64{1, 0.5, 0}, Linspace(1, 0, 3))

	pts := Linspace(0.1, 0.7, 7)
	assert.Len(t, pts, 7)
	assert.Equal(t, 0.7, pts[6])
	assert.InDelta(t, 0.4, pts[3], 1e-15)
}
