package coderain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/surface"
	"github.com/jenafy/cardfx/internal/theme"
)

// seqRand replays a fixed sequence and then repeats its last value.
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[len(s.vals)-1]
	if s.i < len(s.vals) {
		v = s.vals[s.i]
		s.i++
	}
	return v
}

func (s *seqRand) Intn(n int) int { return int(s.Float64() * float64(n)) }

func newTestEngine(rnd fx.Rand, w, h float64) *Engine {
	e := New(theme.Green, rnd, WithNoise(fx.NewRand(1)))
	e.Init(w, h)
	return e
}

func TestSpawnOnFirstFrameThenRise(t *testing.T) {
	rnd := &seqRand{vals: []float64{
		0.0, // spawn roll
		0.5, // keyword roll: punctuation
		0.0, // token "{"
		0.5, // x
		0.0, // trail length 3
		0.5, // vx = 0
		0.5, // vy = -1
		0.0, // colour
		0.99,
	}}
	e := newTestEngine(rnd, 300, 300)
	rec := surface.NewRecorder(300, 300)

	e.Frame(rec)
	require.Len(t, e.Particles(), 1)
	p := e.Particles()[0]
	assert.Equal(t, "{", p.Glyph)
	assert.Equal(t, 150.0, p.X)
	assert.Equal(t, -1.0, p.VY)
	assert.Len(t, p.Trail, 3)
	assert.Equal(t, theme.Green.Palette[0], p.Color)

	startY := 300 + SpawnOffset
	for i := 1; i < 50; i++ {
		e.Frame(rec)
	}

	ps := e.Particles()
	require.Len(t, ps, 1)
	p = ps[0]
	assert.InDelta(t, startY+50*p.VY, p.Y, 1e-9)
	assert.InDelta(t, 1-50*DefaultLifeStep, p.Life, 1e-9)
	assert.Equal(t, uint64(1), e.Spawned())
}

func TestLifeMonotonicAndDeadRemoved(t *testing.T) {
	e := newTestEngine(fx.NewRand(42), 300, 300)
	rec := surface.NewRecorder(300, 300)

	last := map[uint64]float64{}
	gone := map[uint64]bool{}
	for frame := 0; frame < 600; frame++ {
		e.Frame(rec)

		seen := map[uint64]bool{}
		for _, p := range e.Particles() {
			require.False(t, gone[p.ID], "particle %d came back", p.ID)
			require.Greater(t, p.Life, 0.0)
			require.LessOrEqual(t, p.Life, 1.0)
			require.GreaterOrEqual(t, p.Y, -TopMargin)
			if prev, ok := last[p.ID]; ok {
				require.Less(t, p.Life, prev)
			}
			last[p.ID] = p.Life
			seen[p.ID] = true
		}
		for id := range last {
			if !seen[id] {
				gone[id] = true
				delete(last, id)
			}
		}
	}

	assert.NotEmpty(t, gone, "some particles should have expired")
	assert.Greater(t, e.Spawned(), uint64(len(e.Particles())))
}

func TestDeterministicWithSeed(t *testing.T) {
	a := newTestEngine(fx.NewRand(7), 200, 150)
	b := newTestEngine(fx.NewRand(7), 200, 150)
	rec := surface.NewRecorder(200, 150)

	for i := 0; i < 120; i++ {
		a.Frame(rec)
		b.Frame(rec)
	}
	assert.Equal(t, a.Particles(), b.Particles())
	assert.Equal(t, a.Spawned(), b.Spawned())
}

func TestResizeKeepsParticles(t *testing.T) {
	e := newTestEngine(fx.NewRand(3), 300, 300)
	rec := surface.NewRecorder(300, 300)
	for i := 0; i < 100; i++ {
		e.Frame(rec)
	}
	before := e.Particles()
	require.NotEmpty(t, before)

	e.Resize(500, 200)
	w, h := e.Bounds()
	assert.Equal(t, 500.0, w)
	assert.Equal(t, 200.0, h)
	assert.Equal(t, before, e.Particles())
}

func TestParticleLeavesAboveTop(t *testing.T) {
	p := Particle{Y: -TopMargin + 0.5, VY: -1, Life: 1}
	p.advance(DefaultLifeStep)
	assert.True(t, p.dead())

	p = Particle{Y: 100, VY: -1, Life: DefaultLifeStep}
	p.advance(DefaultLifeStep)
	assert.True(t, p.dead())
}

func TestAdvanceShiftsTrail(t *testing.T) {
	p := Particle{X: 5, Y: 50, VX: 1, VY: -2, Life: 1, Trail: []fx.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}}
	p.advance(0.1)

	assert.Equal(t, []fx.Point{{X: 5, Y: 50}, {X: 1, Y: 1}, {X: 2, Y: 2}}, p.Trail)
	assert.Equal(t, 6.0, p.X)
	assert.Equal(t, 48.0, p.Y)
	assert.InDelta(t, 0.9, p.Life, 1e-12)
}

func TestStopHaltsDrawing(t *testing.T) {
	rec := surface.NewRecorder(300, 300)
	r := fx.NewRunner(New(theme.Green, fx.NewRand(1)))

	require.NoError(t, r.Start(rec, fx.NewResizeHub()))
	r.Stop()

	for i := 0; i < 10; i++ {
		assert.False(t, r.Step())
	}
	assert.Zero(t, rec.Draws())
}

func TestParamsDefaults(t *testing.T) {
	p := Params{TrailMin: 9}.withDefaults()
	assert.Equal(t, DefaultSpawnChance, p.SpawnChance)
	assert.Equal(t, 9, p.TrailMin)
	assert.Equal(t, 9, p.TrailMax, "max is raised to min")

	p = Params{}.withDefaults()
	assert.Equal(t, DefaultParams(), p)
}
