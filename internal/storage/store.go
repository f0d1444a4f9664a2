package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jenafy/cardfx/internal/config"
	"github.com/jenafy/cardfx/internal/metrics"
)

var ErrNoRun = errors.New("storage: run not found")

var frameHeader = []string{"frame", "population", "connections", "mean_life", "draws"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Engine    string             `json:"engine"`
	Theme     string             `json:"theme"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Config    *config.Config     `json:"config,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Run is a finished headless recording.
type Run struct {
	Engine  string
	Seed    int64
	Elapsed time.Duration
	Config  *config.Config
	Metrics map[string]float64
	Samples []metrics.Sample
}

// Save writes metadata.json and frames.csv under a fresh run directory and
// returns the run id.
func (s *Store) Save(run *Run) (string, error) {
	runID := fmt.Sprintf("%s_%s", run.Engine, uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Engine:    run.Engine,
		Timestamp: time.Now(),
		Seed:      run.Seed,
		Frames:    len(run.Samples),
		Elapsed:   run.Elapsed,
		Config:    run.Config,
		Metrics:   run.Metrics,
	}
	if run.Config != nil {
		meta.Theme = run.Config.Theme
		meta.Width = run.Config.Width
		meta.Height = run.Config.Height
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSamplesCSV(csvFile, run.Samples); err != nil {
		return "", err
	}
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

// List returns every readable run, newest first.
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
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads back the per-frame samples of a run. Malformed rows are
// skipped.
func (s *Store) LoadFrames(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []metrics.Sample{}, nil
	}

	samples := make([]metrics.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(frameHeader) {
			continue
		}
		sample, err := parseSample(record)
		if err != nil {
			continue
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func parseSample(record []string) (metrics.Sample, error) {
	var s metrics.Sample
	frame, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return s, err
	}
	pop, err := strconv.Atoi(record[1])
	if err != nil {
		return s, err
	}
	conns, err := strconv.Atoi(record[2])
	if err != nil {
		return s, err
	}
	life, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return s, err
	}
	draws, err := strconv.Atoi(record[4])
	if err != nil {
		return s, err
	}
	return metrics.Sample{
		Frame:       frame,
		Population:  pop,
		Connections: conns,
		MeanLife:    life,
		Draws:       draws,
	}, nil
}
