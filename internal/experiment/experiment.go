package experiment

import (
	"fmt"
	"time"

	"github.com/san-kum/menisim/internal/config"
	"github.com/san-kum/menisim/internal/integrators"
	"github.com/san-kum/menisim/internal/meniscus"
	"github.com/san-kum/menisim/internal/metrics"
	"github.com/san-kum/menisim/internal/shooting"
	log "github.com/sirupsen/logrus"
)

// Experiment is one configured solve: parameters, integrator and metrics.
type Experiment struct {
	cfg     config.Config
	model   *meniscus.Model
	metrics []metrics.Metric
	logger  log.FieldLogger
}

type Result struct {
	Profile *meniscus.Profile
	Metrics map[string]float64
	Elapsed time.Duration
}

func New(cfg config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// WithLogger attaches a logger that receives the shooting iterations at debug level.
func (e *Experiment) WithLogger(l log.FieldLogger) *Experiment {
	e.logger = l
	return e
}

// Setup resolves the integrator and metrics. A nil metric list selects the defaults.
func (e *Experiment) Setup(ms []metrics.Metric) error {
	stepper, err := integrators.Get(e.cfg.Solver.Integrator)
	if err != nil {
		return err
	}
	solveCfg := e.cfg.SolveConfig()
	if err := solveCfg.Validate(); err != nil {
		return err
	}

	solver := shooting.New()
	solver.Stepper = stepper
	solver.Config = solveCfg
	solver.Logger = e.logger

	e.model = &meniscus.Model{Solver: solver}
	if ms == nil {
		ms = metrics.Defaults()
	}
	e.metrics = ms
	return nil
}

func (e *Experiment) Run() (*Result, error) {
	if e.model == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	start := time.Now()
	prof, err := e.model.Solve(e.cfg.Params())
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	return &Result{
		Profile: prof,
		Metrics: metrics.Evaluate(prof, e.metrics...),
		Elapsed: elapsed,
	}, nil
}

func (e *Experiment) Config() config.Config {
	return e.cfg
}
