package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/jenafy/cardfx/internal/catalog"
	"github.com/jenafy/cardfx/internal/config"
	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/theme"
)

const (
	statsWidth = 40
	// cardChrome is the border and padding around a card's surface.
	cardChrome = 4
	// cardHeader is the title, badge and description lines above and below
	// the surface.
	cardHeader = 9
	minCols    = 10
	minRows    = 4
)

type TickMsg time.Time

// ConfigMsg carries a reloaded config into the view.
type ConfigMsg struct{ Config *config.Config }

// Model is the team view. Cards are pointers so the value-receiver
// bubbletea methods share engine state.
type Model struct {
	cards    []*card
	hub      *fx.ResizeHub
	registry *catalog.Registry
	cfg      *config.Config
	log      *zap.Logger
	reloads  <-chan *config.Config

	focus         int
	paused        bool
	showHelp      bool
	width, height int
	hostFrames    uint64
	err           error
}

// Option configures a Model.
type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithReloads makes the view restart its engines on every config received.
func WithReloads(ch <-chan *config.Config) Option {
	return func(m *Model) { m.reloads = ch }
}

// NewModel builds one card per member and starts their engines.
func NewModel(members []catalog.Member, cfg *config.Config, opts ...Option) (Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := Model{
		hub:      fx.NewResizeHub(),
		registry: catalog.NewRegistry(),
		cfg:      cfg,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	for i, member := range members {
		if !m.registry.Has(member.Engine) {
			return Model{}, fmt.Errorf("%w: %s", fx.ErrUnknownEngine, member.Engine)
		}
		c := newCard(member, cfg, seedFor(cfg.Seed, i))
		if err := c.start(m.registry, cfg, m.hub, m.log); err != nil {
			return Model{}, err
		}
		m.cards = append(m.cards, c)
	}
	return m, nil
}

func seedFor(base int64, i int) int64 {
	if base == 0 {
		return 0
	}
	return base + int64(i)
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.reloads != nil {
		cmds = append(cmds, WaitForConfig(m.reloads))
	}
	return tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.Interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// WaitForConfig delivers the next reloaded config as a ConfigMsg.
func WaitForConfig(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigMsg{Config: cfg}
	}
}

// Update handles input events and steps the engines.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Stop()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.restart()
		case "t":
			for _, c := range m.cards {
				c.theme = theme.Next(c.theme.Name)
			}
			m.restart()
		case "tab":
			if len(m.cards) > 0 {
				m.focus = (m.focus + 1) % len(m.cards)
			}
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case ConfigMsg:
		m.log.Info("applying reloaded config")
		m.cfg = msg.Config
		m.restart()
		if m.reloads != nil {
			return m, WaitForConfig(m.reloads)
		}

	case TickMsg:
		if !m.paused {
			for _, c := range m.cards {
				c.step()
			}
			m.hostFrames++
		}
		return m, m.tick()
	}
	return m, nil
}

// restart stops every engine and starts a fresh instance in its place.
func (m *Model) restart() {
	for _, c := range m.cards {
		if err := c.start(m.registry, m.cfg, m.hub, m.log); err != nil {
			m.err = err
			m.log.Warn("restart failed", zap.String("member", c.member.Name), zap.Error(err))
		}
	}
}

// resize fits the cards side by side next to the stats panel and tells
// the engines about their new surfaces.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	if len(m.cards) == 0 {
		return
	}

	cols := (w-statsWidth)/len(m.cards) - cardChrome
	rows := h - cardHeader
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	for _, c := range m.cards {
		c.surface.SetCells(cols, rows)
	}
	m.hub.Notify()
}

// Stop halts every engine. It is safe to call more than once.
func (m Model) Stop() {
	for _, c := range m.cards {
		c.stop()
	}
}

// View renders the cards and the stats panel.
func (m Model) View() string {
	views := make([]string, 0, len(m.cards)+1)
	for i, c := range m.cards {
		views = append(views, c.view(i == m.focus))
	}
	views = append(views, statsStyle.Render(m.statsView()))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, views...)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume frames      ║
║  R        - Restart engines          ║
║  T        - Cycle themes             ║
║  Tab      - Focus next card          ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m Model) statsView() string {
	var s strings.Builder
	if len(m.cards) == 0 {
		return "no cards"
	}
	c := m.cards[m.focus]

	s.WriteString(headerStyle.Render(strings.ToUpper(c.member.Engine)+" · "+c.theme.Name) + "\n")
	if m.paused {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n")
	} else {
		s.WriteString(StatusRunning.Render(AnimatedSpinner(m.hostFrames)+" RUNNING") + "\n")
	}

	pop := c.stats.Population()
	if len(pop) > 1 {
		chart := asciigraph.Plot(pop, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("Population"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	vals := c.stats.Values()
	s.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", c.frames())) + "\n")
	s.WriteString(labelStyle.Render("State") + valueStyle.Render(c.runner.State().String()) + "\n")
	if samples := c.stats.Samples(); len(samples) > 0 {
		last := samples[len(samples)-1]
		s.WriteString(labelStyle.Render("Population") + valueStyle.Render(fmt.Sprintf("%d", last.Population)) + "\n")
		if last.Connections > 0 {
			s.WriteString(labelStyle.Render("Links") + valueStyle.Render(fmt.Sprintf("%d", last.Connections)) + "\n")
		}
		if last.MeanLife > 0 {
			s.WriteString(labelStyle.Render("Mean life") + valueStyle.Render(fmt.Sprintf("%.2f", last.MeanLife)) + "\n")
		}
	}
	s.WriteString(labelStyle.Render("Peak") + valueStyle.Render(fmt.Sprintf("%.0f", vals["population_peak"])) + "\n")
	s.WriteString(labelStyle.Render("Surface") + valueStyle.Render(fmt.Sprintf("%dx%d", c.surface.Width, c.surface.Height)) + "\n")
	if m.err != nil {
		s.WriteString(StatusPaused.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(statsWidth-6) + "\nSP:Pause R:Restart Q:Quit\nT:Theme  Tab:Focus ?:Help"))
	return s.String()
}

// Cards reports the number of cards.
func (m Model) Cards() int { return len(m.cards) }

// Runner exposes card i's current runner.
func (m Model) Runner(i int) *fx.Runner { return m.cards[i].runner }
