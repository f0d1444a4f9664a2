package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenafy/cardfx/internal/catalog"
	"github.com/jenafy/cardfx/internal/coderain"
	"github.com/jenafy/cardfx/internal/config"
	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/shapefield"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 5
	cfg.Card.Cols, cfg.Card.Rows = 20, 8
	m, err := NewModel(catalog.Members, cfg)
	require.NoError(t, err)
	t.Cleanup(m.Stop)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelStartsEveryCard(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, 2, m.Cards())
	for i := 0; i < m.Cards(); i++ {
		assert.Equal(t, fx.Running, m.Runner(i).State())
	}
	assert.IsType(t, &coderain.Engine{}, m.Runner(0).Scene())
	assert.IsType(t, &shapefield.Engine{}, m.Runner(1).Scene())
}

func TestUnknownEngine(t *testing.T) {
	_, err := NewModel([]catalog.Member{{Name: "x", Engine: "nope"}}, nil)
	assert.ErrorIs(t, err, fx.ErrUnknownEngine)
}

func TestTickStepsUnlessPaused(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, TickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, uint64(1), m.Runner(0).Frames())
	assert.Equal(t, uint64(1), m.Runner(1).Frames())

	m, _ = update(t, m, key(" "))
	m, _ = update(t, m, TickMsg(time.Now()))
	assert.Equal(t, uint64(1), m.Runner(0).Frames(), "paused host must not step")
}

func TestWindowResizeReachesEngines(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, TickMsg(time.Now()))

	shapes := m.Runner(1).Scene().(*shapefield.Engine)
	before := shapes.Shapes()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	m, _ = update(t, m, TickMsg(time.Now()))

	w, h := shapes.Bounds()
	sw, sh := m.cards[1].surface.Size()
	assert.Equal(t, sw, w)
	assert.Equal(t, sh, h)
	assert.Equal(t, (160-statsWidth)/2-cardChrome, m.cards[1].surface.Width)
	assert.Len(t, shapes.Shapes(), len(before), "resize keeps the population")
}

func TestRestartCreatesFreshEngines(t *testing.T) {
	m := newTestModel(t)
	old := m.Runner(0)
	m, _ = update(t, m, TickMsg(time.Now()))

	m, _ = update(t, m, key("r"))
	assert.Equal(t, fx.Stopped, old.State())
	assert.NotSame(t, old, m.Runner(0))
	assert.Equal(t, fx.Running, m.Runner(0).State())
	assert.Zero(t, m.Runner(0).Frames())
}

func TestThemeCycle(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "green", m.cards[0].theme.Name)

	m, _ = update(t, m, key("t"))
	assert.NotEqual(t, "green", m.cards[0].theme.Name)
	assert.Equal(t, fx.Running, m.Runner(0).State())
}

func TestQuitStopsRunners(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	for i := 0; i < m.Cards(); i++ {
		assert.Equal(t, fx.Stopped, m.Runner(i).State())
		assert.False(t, m.Runner(i).Step())
	}
}

func TestConfigReload(t *testing.T) {
	ch := make(chan *config.Config, 1)
	cfg := config.DefaultConfig()
	m, err := NewModel(catalog.Members, cfg, WithReloads(ch))
	require.NoError(t, err)
	defer m.Stop()

	next := config.DefaultConfig()
	next.Shapes.Count = 4
	ch <- next

	msg := WaitForConfig(ch)()
	m, cmd := update(t, m, msg)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, TickMsg(time.Now()))
	shapes := m.Runner(1).Scene().(*shapefield.Engine)
	assert.Len(t, shapes.Shapes(), 4)
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	out := m.View()
	assert.Contains(t, out, "RUNNING")
	assert.Contains(t, out, "Frames")

	m, _ = update(t, m, key("?"))
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")
}
