package metrics

import "github.com/jenafy/cardfx/internal/fx"

// MeanConnections is the average number of directed proximity links per frame.
type MeanConnections struct {
	name    string
	sum     float64
	samples int
}

func NewMeanConnections() *MeanConnections {
	return &MeanConnections{name: "mean_connections"}
}

func (m *MeanConnections) Name() string { return m.name }

func (m *MeanConnections) Observe(_ uint64, s fx.Stats) {
	m.sum += float64(s.Connections)
	m.samples++
}

func (m *MeanConnections) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanConnections) Reset() {
	m.sum = 0
	m.samples = 0
}
