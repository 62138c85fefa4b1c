package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/menisim/internal/dynamo"
	"github.com/san-kum/menisim/internal/meniscus"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntegrator = "rk4"
	DefaultDelta      = 2e-6
	DefaultTolerance  = 1e-12
	DefaultMaxIter    = 20
)

type Config struct {
	Meniscus MeniscusConfig `yaml:"meniscus" ini:"meniscus"`
	Solver   SolverConfig   `yaml:"solver" ini:"solver"`
}

type MeniscusConfig struct {
	Rho      float64 `yaml:"rho" ini:"rho"`
	Gamma    float64 `yaml:"gamma" ini:"gamma"`
	ThetaDeg float64 `yaml:"theta_deg" ini:"theta_deg"`
	Radius   float64 `yaml:"R" ini:"R"`
	Gravity  float64 `yaml:"g" ini:"g"`
	N        int     `yaml:"n" ini:"n"`
}

type SolverConfig struct {
	Integrator string  `yaml:"integrator" ini:"integrator" json:"integrator"`
	Delta      float64 `yaml:"delta" ini:"delta" json:"delta"`
	Tolerance  float64 `yaml:"tolerance" ini:"tolerance" json:"tolerance"`
	MaxIter    int     `yaml:"max_iter" ini:"max_iter" json:"max_iter"`
}

func DefaultConfig() *Config {
	return &Config{
		Meniscus: MeniscusConfig{
			Rho:      meniscus.DefaultRho,
			Gamma:    meniscus.DefaultGamma,
			ThetaDeg: meniscus.DefaultThetaDeg,
			Radius:   meniscus.DefaultRadius,
			Gravity:  meniscus.DefaultGravity,
			N:        meniscus.DefaultN,
		},
		Solver: SolverConfig{
			Integrator: DefaultIntegrator,
			Delta:      DefaultDelta,
			Tolerance:  DefaultTolerance,
			MaxIter:    DefaultMaxIter,
		},
	}
}

// Load reads a YAML (.yaml, .yml) or INI (.ini) file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".ini":
		file, err := ini.Load(path)
		if err != nil {
			return nil, err
		}
		if err := file.MapTo(cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", dynamo.ErrConfiguration, filepath.Ext(path))
	}

	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() meniscus.Params {
	return meniscus.Params{
		Rho:      c.Meniscus.Rho,
		Gamma:    c.Meniscus.Gamma,
		ThetaDeg: c.Meniscus.ThetaDeg,
		Radius:   c.Meniscus.Radius,
		Gravity:  c.Meniscus.Gravity,
		N:        c.Meniscus.N,
	}
}

func (c *Config) SolveConfig() dynamo.SolveConfig {
	return dynamo.SolveConfig{
		Delta:     c.Solver.Delta,
		Tolerance: c.Solver.Tolerance,
		MaxIter:   c.Solver.MaxIter,
	}
}

// Keys accepted by Set and FromMap.
var Keys = []string{"rho", "gamma", "theta_deg", "R", "g", "n"}

// Set assigns one physical parameter by its input key.
func (m *MeniscusConfig) Set(key string, v float64) error {
	switch key {
	case "rho":
		m.Rho = v
	case "gamma":
		m.Gamma = v
	case "theta_deg":
		m.ThetaDeg = v
	case "R":
		m.Radius = v
	case "g":
		m.Gravity = v
	case "n":
		if math.IsNaN(v) || v > meniscus.MaxSamples {
			return fmt.Errorf("%w: n must be at most %d, got %g", dynamo.ErrConfiguration, meniscus.MaxSamples, v)
		}
		// Anything below the floor is clamped by Normalize; keep int() in range.
		m.N = int(math.Max(v, 0))
	default:
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrConfiguration, key)
	}
	return nil
}

// Get reads one physical parameter by its input key.
func (m *MeniscusConfig) Get(key string) (float64, bool) {
	switch key {
	case "rho":
		return m.Rho, true
	case "gamma":
		return m.Gamma, true
	case "theta_deg":
		return m.ThetaDeg, true
	case "R":
		return m.Radius, true
	case "g":
		return m.Gravity, true
	case "n":
		return float64(m.N), true
	}
	return 0, false
}

// FromMap builds parameters from an untyped mapping, as produced by a JSON
// decoder or a host runtime. Missing keys keep their defaults; keys outside
// Keys are ignored.
func FromMap(in map[string]any) (meniscus.Params, error) {
	m := DefaultConfig().Meniscus
	for _, key := range Keys {
		raw, ok := in[key]
		if !ok || raw == nil {
			continue
		}
		v, err := toFloat(raw)
		if err != nil {
			return meniscus.Params{}, fmt.Errorf("%w: %s: %v", dynamo.ErrConfiguration, key, err)
		}
		if err := m.Set(key, v); err != nil {
			return meniscus.Params{}, err
		}
	}
	cfg := Config{Meniscus: m}
	return cfg.Params(), nil
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return f, nil
	case interface{ Float64() (float64, error) }:
		return v.Float64()
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
}
