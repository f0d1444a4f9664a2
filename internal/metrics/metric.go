package metrics

import "github.com/jenafy/cardfx/internal/fx"

// Metric folds per-frame engine stats into one number.
type Metric interface {
	Name() string
	Observe(frame uint64, s fx.Stats)
	Value() float64
	Reset()
}

// Standard returns the metrics recorded for every run.
func Standard() []Metric {
	return []Metric{
		NewPopulationMean(),
		NewPopulationPeak(),
		NewMeanConnections(),
		NewMeanLife(),
	}
}
