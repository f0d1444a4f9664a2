package metrics

import (
	"sync"

	"github.com/jenafy/cardfx/internal/fx"
)

// Sample is one frame's worth of recorded stats.
type Sample struct {
	Frame       uint64
	Population  int
	Connections int
	MeanLife    float64
	Draws       int
}

// Collector is an fx.Observer that feeds every metric and keeps a bounded
// history of samples. A limit of zero keeps everything.
type Collector struct {
	mu      sync.Mutex
	metrics []Metric
	draws   *DrawCalls
	limit   int
	samples []Sample
}

func NewCollector(limit int, ms ...Metric) *Collector {
	c := &Collector{metrics: ms, limit: limit}
	for _, m := range ms {
		if d, ok := m.(*DrawCalls); ok {
			c.draws = d
		}
	}
	return c
}

func (c *Collector) OnFrame(frame uint64, s fx.Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.metrics {
		m.Observe(frame, s)
	}

	sample := Sample{
		Frame:       frame,
		Population:  s.Population,
		Connections: s.Connections,
		MeanLife:    s.MeanLife,
	}
	if c.draws != nil {
		sample.Draws = c.draws.Current
	}
	c.samples = append(c.samples, sample)
	if c.limit > 0 && len(c.samples) > c.limit {
		c.samples = c.samples[len(c.samples)-c.limit:]
	}
}

// Samples returns a copy of the retained history, oldest first.
func (c *Collector) Samples() []Sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Sample(nil), c.samples...)
}

// Population returns the retained population history as floats, for charts.
func (c *Collector) Population() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]float64, len(c.samples))
	for i, s := range c.samples {
		out[i] = float64(s.Population)
	}
	return out
}

// Values maps metric names to their current values.
func (c *Collector) Values() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.metrics {
		m.Reset()
	}
	c.samples = nil
}

var _ fx.Observer = (*Collector)(nil)
