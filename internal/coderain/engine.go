package coderain

import (
	"image/color"

	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/theme"
)

// Particle is one rising code glyph.
type Particle struct {
	ID     uint64
	X, Y   float64
	VX, VY float64
	// Life falls from 1 by a fixed step per frame; the particle is removed
	// once it reaches zero.
	Life  float64
	Glyph string
	Color color.RGBA
	// Trail holds prior positions, most recent first.
	Trail []fx.Point
}

func (p *Particle) clone() Particle {
	c := *p
	c.Trail = append([]fx.Point(nil), p.Trail...)
	return c
}

// advance shifts the trail, integrates position and burns life.
func (p *Particle) advance(lifeStep float64) {
	if n := len(p.Trail); n > 0 {
		copy(p.Trail[1:], p.Trail[:n-1])
		p.Trail[0] = fx.Point{X: p.X, Y: p.Y}
	}
	p.X += p.VX
	p.Y += p.VY
	p.Life -= lifeStep
}

func (p *Particle) dead() bool {
	return p.Life <= 0 || p.Y < -TopMargin
}

// Engine is the Code-Rain scene. All state is owned by the instance.
type Engine struct {
	theme  theme.Theme
	params Params
	rnd    fx.Rand
	noise  fx.Rand

	w, h      float64
	particles []Particle
	nextID    uint64
	spawned   uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithNoise sets the random source for the decorative layers.
func WithNoise(r fx.Rand) Option {
	return func(e *Engine) { e.noise = r }
}

func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p.withDefaults() }
}

// New creates an engine drawing in th's colours. Particle attributes are
// drawn from rnd.
func New(th theme.Theme, rnd fx.Rand, opts ...Option) *Engine {
	e := &Engine{
		theme:  th,
		params: DefaultParams(),
		rnd:    rnd,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = fx.NewRand(0)
	}
	if e.noise == nil {
		e.noise = fx.NewRand(0)
	}
	return e
}

func (e *Engine) Name() string { return "rain" }

func (e *Engine) Init(w, h float64) {
	e.w, e.h = w, h
	e.particles = e.particles[:0]
}

func (e *Engine) Resize(w, h float64) {
	e.w, e.h = w, h
}

// Frame clears the surface, maybe spawns a particle, then advances and
// draws every particle over the decorative layers.
func (e *Engine) Frame(s fx.Surface) {
	s.Clear()

	if e.rnd.Float64() < e.params.SpawnChance {
		e.spawn()
	}

	e.drawNoise(s)
	e.drawCircuits(s)

	live := e.particles[:0]
	for i := range e.particles {
		p := &e.particles[i]
		p.advance(e.params.LifeStep)
		if p.dead() {
			continue
		}
		e.drawParticle(s, p)
		live = append(live, *p)
	}
	e.particles = live

	e.drawBrackets(s)
}

// spawn appends one particle at a random x on the bottom edge.
func (e *Engine) spawn() {
	var glyph string
	if e.rnd.Float64() < e.params.KeywordChance {
		glyph = keywords[e.rnd.Intn(len(keywords))]
	} else {
		glyph = punctuation[e.rnd.Intn(len(punctuation))]
	}

	x := e.rnd.Float64() * e.w
	trailLen := e.params.TrailMin + e.rnd.Intn(e.params.TrailMax-e.params.TrailMin+1)
	vx := (e.rnd.Float64() - 0.5) * 0.3
	vy := -(e.rnd.Float64() + 0.5)
	col := e.theme.Palette[e.rnd.Intn(len(e.theme.Palette))]

	trail := make([]fx.Point, trailLen)
	for i := range trail {
		trail[i] = fx.Point{X: x, Y: e.h}
	}

	e.nextID++
	e.spawned++
	e.particles = append(e.particles, Particle{
		ID:    e.nextID,
		X:     x,
		Y:     e.h + SpawnOffset,
		VX:    vx,
		VY:    vy,
		Life:  1,
		Glyph: glyph,
		Color: col,
		Trail: trail,
	})
}

func (e *Engine) drawParticle(s fx.Surface, p *Particle) {
	s.SetFill(p.Color)

	n := float64(len(p.Trail))
	for j, pt := range p.Trail {
		s.SetAlpha(p.Life * (1 - float64(j)/n) * 0.3)
		s.FillText(p.Glyph, pt.X, pt.Y, trailSize)
	}

	s.SetAlpha(p.Life * 0.8)
	s.FillText(p.Glyph, p.X, p.Y, glyphSize)

	s.SetAlpha(p.Life * 0.2)
	s.SetGlow(10, p.Color)
	s.FillText(p.Glyph, p.X, p.Y, glyphSize)
	s.SetGlow(0, p.Color)
}

// drawNoise scatters faint digits over a coarse grid.
func (e *Engine) drawNoise(s fx.Surface) {
	s.SetAlpha(0.02)
	s.SetFill(e.theme.Noise)
	cell := e.params.NoiseCell
	for x := 0.0; x < e.w; x += cell {
		for y := 0.0; y < e.h; y += cell {
			if e.noise.Float64() < e.params.NoiseChance {
				s.FillText("1", x, y, noiseSize)
			}
		}
	}
}

// drawCircuits strokes jittered polylines across the full width.
func (e *Engine) drawCircuits(s fx.Surface) {
	s.SetAlpha(0.03)
	s.SetStroke(e.theme.Circuit)
	s.SetLineWidth(1)
	for i := 0; i < e.params.Circuits; i++ {
		s.BeginPath()
		x := 0.0
		y := e.noise.Float64() * e.h
		s.MoveTo(x, y)
		for x < e.w {
			x += 20 + e.noise.Float64()*30
			y += (e.noise.Float64() - 0.5) * 40
			s.LineTo(x, y)
		}
		s.Stroke()
	}
}

func (e *Engine) drawBrackets(s fx.Surface) {
	s.SetAlpha(0.1)
	s.SetStroke(e.theme.Bracket)
	s.SetLineWidth(1)
	for _, frac := range []float64{0.2, 0.8} {
		s.BeginPath()
		s.MoveTo(e.w*frac, e.h*0.3)
		s.LineTo(e.w*frac, e.h*0.7)
		s.Stroke()
	}
}

// Particles returns a copy of the live particles.
func (e *Engine) Particles() []Particle {
	out := make([]Particle, len(e.particles))
	for i := range e.particles {
		out[i] = e.particles[i].clone()
	}
	return out
}

// Spawned returns the number of particles created so far.
func (e *Engine) Spawned() uint64 { return e.spawned }

func (e *Engine) Bounds() (w, h float64) { return e.w, e.h }

func (e *Engine) Stats() fx.Stats {
	st := fx.Stats{Population: len(e.particles)}
	if len(e.particles) == 0 {
		return st
	}
	sum := 0.0
	for i := range e.particles {
		sum += e.particles[i].Life
	}
	st.MeanLife = sum / float64(len(e.particles))
	return st
}
