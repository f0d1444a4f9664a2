package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jenafy/cardfx/internal/config"
	"github.com/jenafy/cardfx/internal/metrics"
)

func testRun() *Run {
	cfg := config.DefaultConfig()
	cfg.Theme = "green"
	return &Run{
		Engine:  "rain",
		Seed:    42,
		Elapsed: 3 * time.Millisecond,
		Config:  cfg,
		Metrics: map[string]float64{"population_peak": 7},
		Samples: []metrics.Sample{
			{Frame: 1, Population: 1, MeanLife: 0.995, Draws: 40},
			{Frame: 2, Population: 2, MeanLife: 0.9925, Draws: 52},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "rain_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Engine != "rain" || meta.Theme != "green" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", meta.Frames)
	}
	if meta.Metrics["population_peak"] != 7 {
		t.Errorf("expected peak 7, got %f", meta.Metrics["population_peak"])
	}
	if meta.Config == nil || meta.Config.Rain.SpawnChance != config.DefaultConfig().Rain.SpawnChance {
		t.Error("config snapshot not restored")
	}

	samples, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[1].Population != 2 || samples[1].Draws != 52 {
		t.Errorf("unexpected sample %+v", samples[1])
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v, %v", runs, err)
	}

	for i := 0; i < 3; i++ {
		if _, err := st.Save(testRun()); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Timestamp.After(runs[i-1].Timestamp) {
			t.Error("runs not sorted newest first")
		}
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
	if _, err := st.LoadFrames("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
}

func TestExport(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(testRun())
	if err != nil {
		t.Fatal(err)
	}

	var csvBuf bytes.Buffer
	if err := st.ExportCSV(runID, &csvBuf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(csvBuf.String()), "\n")
	if len(lines) != 3 || lines[0] != "frame,population,connections,mean_life,draws" {
		t.Errorf("unexpected csv:\n%s", csvBuf.String())
	}

	var jsonBuf bytes.Buffer
	if err := st.ExportJSON(runID, &jsonBuf); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		ID      string           `json:"id"`
		Samples []metrics.Sample `json:"samples"`
	}
	if err := json.Unmarshal(jsonBuf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.ID != runID || len(doc.Samples) != 2 {
		t.Errorf("unexpected export %+v", doc)
	}
}
