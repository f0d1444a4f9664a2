package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jenafy/cardfx/internal/catalog"
	"github.com/jenafy/cardfx/internal/config"
	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/metrics"
	"github.com/jenafy/cardfx/internal/surface"
	"github.com/jenafy/cardfx/internal/theme"
)

const historyCapacity = 600

// card is one member's backdrop: a surface that outlives restarts and the
// engine and runner currently drawing on it.
type card struct {
	member  catalog.Member
	theme   theme.Theme
	surface *surface.Braille
	runner  *fx.Runner
	stats   *metrics.Collector
	seed    int64
}

func newCard(m catalog.Member, cfg *config.Config, seed int64) *card {
	th := theme.Lookup(m.Theme)
	return &card{
		member:  m,
		theme:   th,
		surface: surface.NewBraille(cfg.Card.Cols, cfg.Card.Rows, cfg.Card.Scale, th.Background),
		seed:    seed,
	}
}

// start replaces the current runner with a fresh engine instance. A
// stopped runner is never restarted.
func (c *card) start(reg *catalog.Registry, cfg *config.Config, hub *fx.ResizeHub, log *zap.Logger) error {
	c.stop()

	scene, err := reg.New(c.member.Engine, c.theme, fx.NewRand(c.seed), cfg)
	if err != nil {
		return err
	}
	c.stats = metrics.NewCollector(historyCapacity, metrics.Standard()...)
	c.runner = fx.NewRunner(scene,
		fx.WithLogger(log.With(zap.String("member", c.member.Name))),
		fx.WithObserver(c.stats),
	)
	return c.runner.Start(c.surface, hub)
}

func (c *card) stop() {
	if c.runner != nil {
		c.runner.Stop()
	}
}

func (c *card) step() {
	if c.runner != nil {
		c.runner.Step()
	}
}

func (c *card) frames() uint64 {
	if c.runner == nil {
		return 0
	}
	return c.runner.Frames()
}

func (c *card) view(focused bool) string {
	th := c.theme
	title := GradientText(c.member.Name, th.Palette[0], th.Palette[len(th.Palette)-1])
	badge := lipgloss.NewStyle().
		Foreground(th.Badge).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Badge).
		Padding(0, 1).
		Render(c.member.Role)
	body := strings.TrimRight(c.surface.Render(), "\n")
	desc := descStyle.Width(c.surface.Width).Render(c.member.Description)

	border := lipgloss.RoundedBorder()
	if focused {
		border = lipgloss.ThickBorder()
	}
	box := lipgloss.NewStyle().
		Border(border).
		BorderForeground(th.Border).
		Padding(0, 1)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, badge, body, desc))
}
