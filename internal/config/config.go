package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jenafy/cardfx/internal/coderain"
	"github.com/jenafy/cardfx/internal/shapefield"
)

const (
	DefaultFPS      = 60
	DefaultFrames   = 180
	DefaultWidth    = 320
	DefaultHeight   = 240
	DefaultCardCols = 40
	DefaultCardRows = 14
	DefaultScale    = 4.0
	DefaultTheme    = "blue"
	DefaultEngine   = "rain"
)

type Config struct {
	Engine string `yaml:"engine"`
	Theme  string `yaml:"theme"`
	Seed   int64  `yaml:"seed"`
	FPS    int    `yaml:"fps"`
	Frames int    `yaml:"frames"`
	// Width and Height size the headless raster in pixels.
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Card   CardConfig `yaml:"card"`

	Rain   coderain.Params   `yaml:"rain"`
	Shapes shapefield.Params `yaml:"shapes"`
}

// CardConfig sizes one terminal card. Scale is logical pixels per braille dot.
type CardConfig struct {
	Cols  int     `yaml:"cols"`
	Rows  int     `yaml:"rows"`
	Scale float64 `yaml:"scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine: DefaultEngine,
		Theme:  DefaultTheme,
		FPS:    DefaultFPS,
		Frames: DefaultFrames,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Card: CardConfig{
			Cols:  DefaultCardCols,
			Rows:  DefaultCardRows,
			Scale: DefaultScale,
		},
		Rain:   coderain.DefaultParams(),
		Shapes: shapefield.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values no engine or surface can run with.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Card.Cols <= 0 || c.Card.Rows <= 0 || c.Card.Scale <= 0 {
		return fmt.Errorf("config: card %dx%d scale %g must be positive", c.Card.Cols, c.Card.Rows, c.Card.Scale)
	}
	return nil
}

// Interval is the frame period for the configured rate.
func (c *Config) Interval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
