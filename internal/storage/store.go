package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/menisim/internal/config"
	"github.com/san-kum/menisim/internal/experiment"
	"github.com/san-kum/menisim/internal/export"
	"github.com/san-kum/menisim/internal/meniscus"
	log "github.com/sirupsen/logrus"
)

const (
	metadataFile = "metadata.json"
	profileFile  = "profile.csv"
)

// Store keeps one directory per solve under baseDir.
type Store struct {
	baseDir string
	logger  log.FieldLogger
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, logger: log.StandardLogger(), now: time.Now}
}

func (s *Store) WithLogger(l log.FieldLogger) *Store {
	s.logger = l
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string              `json:"id"`
	Timestamp  time.Time           `json:"timestamp"`
	Params     meniscus.Params     `json:"params"`
	Solver     config.SolverConfig `json:"solver"`
	Metrics    map[string]float64  `json:"metrics"`
	Iterations int                 `json:"iterations"`
	ZMin       float64             `json:"z_min"`
	ElapsedMS  float64             `json:"elapsed_ms"`
}

func (s *Store) Save(cfg config.Config, result *experiment.Result) (string, error) {
	if result == nil || result.Profile == nil {
		return "", fmt.Errorf("storage: empty result")
	}

	ts := s.now()
	runID := fmt.Sprintf("%s_%d", cfg.Solver.Integrator, ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  ts,
		Params:     cfg.Params(),
		Solver:     cfg.Solver,
		Metrics:    result.Metrics,
		Iterations: result.Profile.Iterations,
		ZMin:       result.Profile.ZMin,
		ElapsedMS:  float64(result.Elapsed.Microseconds()) / 1e3,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, profileFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := export.WriteCSV(csvFile, result.Profile.R, result.Profile.Z); err != nil {
		return "", err
	}

	s.logger.WithFields(log.Fields{
		"run":     runID,
		"samples": result.Profile.Len(),
	}).Debug("run saved")
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns saved runs, oldest first. Unreadable run directories are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.WithError(err).WithField("run", entry.Name()).Warn("skipping run")
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadProfile(runID string) ([]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, profileFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	return export.ReadCSV(file)
}
