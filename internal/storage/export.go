package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/jenafy/cardfx/internal/metrics"
)

type ExportData struct {
	RunMetadata
	Samples []metrics.Sample `json:"samples"`
}

// WriteSamplesCSV writes a header row followed by one row per sample.
func WriteSamplesCSV(out io.Writer, samples []metrics.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatUint(s.Frame, 10),
			strconv.Itoa(s.Population),
			strconv.Itoa(s.Connections),
			strconv.FormatFloat(s.MeanLife, 'f', 6, 64),
			strconv.Itoa(s.Draws),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportCSV copies a stored run's frames to out.
func (s *Store) ExportCSV(runID string, out io.Writer) error {
	samples, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	return WriteSamplesCSV(out, samples)
}

// ExportJSON writes a stored run's metadata and frames as one document.
func (s *Store) ExportJSON(runID string, out io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Samples: samples})
}
