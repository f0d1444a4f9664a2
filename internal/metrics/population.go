package metrics

import "github.com/jenafy/cardfx/internal/fx"

type PopulationMean struct {
	name    string
	sum     float64
	samples int
}

func NewPopulationMean() *PopulationMean {
	return &PopulationMean{name: "population_mean"}
}

func (p *PopulationMean) Name() string { return p.name }

func (p *PopulationMean) Observe(_ uint64, s fx.Stats) {
	p.sum += float64(s.Population)
	p.samples++
}

func (p *PopulationMean) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *PopulationMean) Reset() {
	p.sum = 0
	p.samples = 0
}

type PopulationPeak struct {
	name string
	peak int
}

func NewPopulationPeak() *PopulationPeak {
	return &PopulationPeak{name: "population_peak"}
}

func (p *PopulationPeak) Name() string { return p.name }

func (p *PopulationPeak) Observe(_ uint64, s fx.Stats) {
	if s.Population > p.peak {
		p.peak = s.Population
	}
}

func (p *PopulationPeak) Value() float64 { return float64(p.peak) }

func (p *PopulationPeak) Reset() { p.peak = 0 }

// MeanLife averages the mean particle life over frames that had particles.
type MeanLife struct {
	name    string
	sum     float64
	samples int
}

func NewMeanLife() *MeanLife {
	return &MeanLife{name: "mean_life"}
}

func (m *MeanLife) Name() string { return m.name }

func (m *MeanLife) Observe(_ uint64, s fx.Stats) {
	if s.Population == 0 || s.MeanLife == 0 {
		return
	}
	m.sum += s.MeanLife
	m.samples++
}

func (m *MeanLife) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanLife) Reset() {
	m.sum = 0
	m.samples = 0
}
