package coderain

// Params tunes the engine. Zero values are replaced by defaults.
type Params struct {
	SpawnChance   float64 `yaml:"spawn_chance"`
	KeywordChance float64 `yaml:"keyword_chance"`
	LifeStep      float64 `yaml:"life_step"`
	TrailMin      int     `yaml:"trail_min"`
	TrailMax      int     `yaml:"trail_max"`
	Circuits      int     `yaml:"circuits"`
	NoiseCell     float64 `yaml:"noise_cell"`
	NoiseChance   float64 `yaml:"noise_chance"`
}

const (
	DefaultSpawnChance   = 0.15
	DefaultKeywordChance = 0.3
	DefaultLifeStep      = 0.005
	DefaultTrailMin      = 3
	DefaultTrailMax      = 7
	DefaultCircuits      = 5
	DefaultNoiseCell     = 20.0
	DefaultNoiseChance   = 0.1

	// SpawnOffset is how far below the bottom edge particles are born.
	SpawnOffset = 10.0
	// TopMargin is how far above the top edge a particle may drift before removal.
	TopMargin = 10.0

	glyphSize = 12.0
	trailSize = 10.0
	noiseSize = 8.0
)

var (
	punctuation = []string{"{", "}", "<", ">", "(", ")", ";", "=", "+", "-", "*", "/"}
	keywords    = []string{"const", "let", "=>", "()"}
)

func DefaultParams() Params {
	return Params{
		SpawnChance:   DefaultSpawnChance,
		KeywordChance: DefaultKeywordChance,
		LifeStep:      DefaultLifeStep,
		TrailMin:      DefaultTrailMin,
		TrailMax:      DefaultTrailMax,
		Circuits:      DefaultCircuits,
		NoiseCell:     DefaultNoiseCell,
		NoiseChance:   DefaultNoiseChance,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.SpawnChance <= 0 {
		p.SpawnChance = d.SpawnChance
	}
	if p.KeywordChance <= 0 {
		p.KeywordChance = d.KeywordChance
	}
	if p.LifeStep <= 0 {
		p.LifeStep = d.LifeStep
	}
	if p.TrailMin <= 0 {
		p.TrailMin = d.TrailMin
	}
	if p.TrailMax <= 0 {
		p.TrailMax = d.TrailMax
	}
	if p.TrailMax < p.TrailMin {
		p.TrailMax = p.TrailMin
	}
	if p.Circuits <= 0 {
		p.Circuits = d.Circuits
	}
	if p.NoiseCell <= 0 {
		p.NoiseCell = d.NoiseCell
	}
	if p.NoiseChance <= 0 {
		p.NoiseChance = d.NoiseChance
	}
	return p
}
