package shapefield

import "math"

// Params tunes the engine. Zero values are replaced by defaults.
type Params struct {
	Count     int     `yaml:"count"`
	Proximity float64 `yaml:"proximity"`
	MinSize   float64 `yaml:"min_size"`
	MaxSize   float64 `yaml:"max_size"`
	MaxSpeed  float64 `yaml:"max_speed"`
	MaxSpin   float64 `yaml:"max_spin"`
	GridStep  float64 `yaml:"grid_step"`
}

const (
	DefaultCount     = 12
	DefaultProximity = 100.0
	DefaultMinSize   = 15.0
	DefaultMaxSize   = 40.0
	DefaultMaxSpeed  = 0.15
	DefaultMaxSpin   = 0.005
	DefaultGridStep  = 30.0

	spiralSteps  = 100
	spiralGrowth = 1.01
	spiralStart  = 2.0
	waveAmp      = 10.0
	starSpikes   = 5
)

// goldenAngle is π(3−√5), about 137.5°.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

func DefaultParams() Params {
	return Params{
		Count:     DefaultCount,
		Proximity: DefaultProximity,
		MinSize:   DefaultMinSize,
		MaxSize:   DefaultMaxSize,
		MaxSpeed:  DefaultMaxSpeed,
		MaxSpin:   DefaultMaxSpin,
		GridStep:  DefaultGridStep,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Count <= 0 {
		p.Count = d.Count
	}
	if p.Proximity <= 0 {
		p.Proximity = d.Proximity
	}
	if p.MinSize <= 0 {
		p.MinSize = d.MinSize
	}
	if p.MaxSize < p.MinSize {
		p.MaxSize = p.MinSize + (d.MaxSize - d.MinSize)
	}
	if p.MaxSpeed <= 0 {
		p.MaxSpeed = d.MaxSpeed
	}
	if p.MaxSpin <= 0 {
		p.MaxSpin = d.MaxSpin
	}
	if p.GridStep <= 0 {
		p.GridStep = d.GridStep
	}
	return p
}
