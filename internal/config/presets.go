package config

import (
	"sort"

	"github.com/jenafy/cardfx/internal/coderain"
	"github.com/jenafy/cardfx/internal/shapefield"
)

var Presets = map[string]map[string]*Config{
	"rain": {
		"drizzle": rainPreset(coderain.Params{SpawnChance: 0.05, LifeStep: 0.004, Circuits: 3}),
		"storm": rainPreset(coderain.Params{
			SpawnChance: 0.6, KeywordChance: 0.5, LifeStep: 0.008,
			TrailMin: 5, TrailMax: 10,
		}),
		"terminal": rainPreset(coderain.Params{KeywordChance: 0.9, NoiseChance: 0.25, Circuits: 8}),
	},
	"shapes": {
		"sparse": shapesPreset(shapefield.Params{Count: 6, Proximity: 140}),
		"dense": shapesPreset(shapefield.Params{
			Count: 30, Proximity: 70, MinSize: 8, MaxSize: 24,
		}),
		"drift": shapesPreset(shapefield.Params{MaxSpeed: 0.05, MaxSpin: 0.002, GridStep: 45}),
	},
}

func rainPreset(p coderain.Params) *Config {
	cfg := DefaultConfig()
	cfg.Engine = "rain"
	cfg.Theme = "green"
	cfg.Rain = mergeRain(cfg.Rain, p)
	return cfg
}

func shapesPreset(p shapefield.Params) *Config {
	cfg := DefaultConfig()
	cfg.Engine = "shapes"
	cfg.Theme = "pink"
	cfg.Shapes = mergeShapes(cfg.Shapes, p)
	return cfg
}

func mergeRain(base, p coderain.Params) coderain.Params {
	if p.SpawnChance > 0 {
		base.SpawnChance = p.SpawnChance
	}
	if p.KeywordChance > 0 {
		base.KeywordChance = p.KeywordChance
	}
	if p.LifeStep > 0 {
		base.LifeStep = p.LifeStep
	}
	if p.TrailMin > 0 {
		base.TrailMin = p.TrailMin
	}
	if p.TrailMax > 0 {
		base.TrailMax = p.TrailMax
	}
	if p.Circuits > 0 {
		base.Circuits = p.Circuits
	}
	if p.NoiseCell > 0 {
		base.NoiseCell = p.NoiseCell
	}
	if p.NoiseChance > 0 {
		base.NoiseChance = p.NoiseChance
	}
	return base
}

func mergeShapes(base, p shapefield.Params) shapefield.Params {
	if p.Count > 0 {
		base.Count = p.Count
	}
	if p.Proximity > 0 {
		base.Proximity = p.Proximity
	}
	if p.MinSize > 0 {
		base.MinSize = p.MinSize
	}
	if p.MaxSize > 0 {
		base.MaxSize = p.MaxSize
	}
	if p.MaxSpeed > 0 {
		base.MaxSpeed = p.MaxSpeed
	}
	if p.MaxSpin > 0 {
		base.MaxSpin = p.MaxSpin
	}
	if p.GridStep > 0 {
		base.GridStep = p.GridStep
	}
	return base
}

// GetPreset returns a copy of the named preset for engine, or nil.
func GetPreset(engine, preset string) *Config {
	enginePresets, ok := Presets[engine]
	if !ok {
		return nil
	}
	cfg, ok := enginePresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// FindPreset looks a preset up by name across all engines.
func FindPreset(preset string) *Config {
	for _, engine := range sortedKeys(Presets) {
		if cfg := GetPreset(engine, preset); cfg != nil {
			return cfg
		}
	}
	return nil
}

func ListPresets(engine string) []string {
	enginePresets, ok := Presets[engine]
	if !ok {
		return nil
	}
	return sortedKeys(enginePresets)
}

func ListEngines() []string { return sortedKeys(Presets) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset copies a preset's engine, theme and the parameter block of
// its engine onto cfg. Other settings are left alone.
func ApplyPreset(cfg, preset *Config) {
	cfg.Engine = preset.Engine
	cfg.Theme = preset.Theme
	switch preset.Engine {
	case "rain":
		cfg.Rain = preset.Rain
	case "shapes":
		cfg.Shapes = preset.Shapes
	}
}
