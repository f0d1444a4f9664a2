package theme

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/jenafy/cardfx/internal/fx"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme is a named colour palette parameterizing an engine's output.
type Theme struct {
	Name string
	// Palette is the five-colour set particles and shapes pick from.
	Palette []color.RGBA
	// Swatches are the corner colour rows drawn by the shape field.
	Swatches []color.RGBA

	Noise   color.RGBA // background glyph speckle
	Circuit color.RGBA // circuit polylines
	Bracket color.RGBA // bracket guide lines
	Grid    color.RGBA // isometric grid
	Link    color.RGBA // connection lines
	Spiral  color.RGBA // golden-ratio spiral

	Background color.RGBA
	Border     lipgloss.Color
	Badge      lipgloss.Color
}

var (
	Green = Theme{
		Name:       "green",
		Palette:    hexes("#10b981", "#34d399", "#059669", "#047857", "#065f46"),
		Swatches:   hexes("#10b981", "#34d399", "#059669", "#047857", "#065f46"),
		Noise:      hex("#10b981"),
		Circuit:    hex("#34d399"),
		Bracket:    hex("#059669"),
		Grid:       hex("#34d399"),
		Link:       hex("#10b981"),
		Spiral:     hex("#fbbf24"),
		Background: hex("#030712"),
		Border:     lipgloss.Color("#10b981"),
		Badge:      lipgloss.Color("#6ee7b7"),
	}

	Pink = Theme{
		Name:       "pink",
		Palette:    hexes("#f472b6", "#c084fc", "#818cf8", "#a78bfa", "#d946ef"),
		Swatches:   hexes("#f472b6", "#c084fc", "#818cf8", "#a78bfa", "#d946ef"),
		Noise:      hex("#f472b6"),
		Circuit:    hex("#c084fc"),
		Bracket:    hex("#d946ef"),
		Grid:       hex("#c084fc"),
		Link:       hex("#f472b6"),
		Spiral:     hex("#fbbf24"),
		Background: hex("#030712"),
		Border:     lipgloss.Color("#ec4899"),
		Badge:      lipgloss.Color("#f9a8d4"),
	}

	// Blue is the fallback for cards with no named theme.
	Blue = Theme{
		Name:       "blue",
		Palette:    hexes("#60a5fa", "#38bdf8", "#22d3ee", "#0ea5e9", "#2dd4bf"),
		Swatches:   hexes("#f472b6", "#c084fc", "#818cf8", "#60a5fa", "#38bdf8"),
		Noise:      hex("#60a5fa"),
		Circuit:    hex("#38bdf8"),
		Bracket:    hex("#22d3ee"),
		Grid:       hex("#c084fc"),
		Link:       hex("#f472b6"),
		Spiral:     hex("#fbbf24"),
		Background: hex("#030712"),
		Border:     lipgloss.Color("#3b82f6"),
		Badge:      lipgloss.Color("#93c5fd"),
	}

	Themes = []Theme{Green, Pink, Blue}
)

// Get returns a theme by name.
func Get(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", fx.ErrUnknownTheme, name)
}

// Lookup returns a theme by name, falling back to Blue.
func Lookup(name string) Theme {
	if t, err := Get(name); err == nil {
		return t
	}
	return Blue
}

// Names returns the available theme names.
func Names() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after name, wrapping around.
func Next(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Hex converts an RGBA colour to #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func hex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("theme: bad colour %q: %v", s, err))
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func hexes(ss ...string) []color.RGBA {
	out := make([]color.RGBA, len(ss))
	for i, s := range ss {
		out[i] = hex(s)
	}
	return out
}
