package shapefield

import (
	"math"

	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/theme"
)

// Engine is the Shape-Field scene. The population is created once in Init
// and only mutated in place afterwards.
type Engine struct {
	theme  theme.Theme
	params Params
	rnd    fx.Rand

	w, h   float64
	shapes []Shape
	links  int
}

// Option configures an Engine.
type Option func(*Engine)

func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p.withDefaults() }
}

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
	return e
}

func (e *Engine) Name() string { return "shapes" }

// Init generates the population for a w×h surface.
func (e *Engine) Init(w, h float64) {
	e.w, e.h = w, h
	e.shapes = make([]Shape, e.params.Count)
	for i := range e.shapes {
		e.shapes[i] = e.newShape(i)
	}
}

func (e *Engine) Resize(w, h float64) {
	e.w, e.h = w, h
}

func (e *Engine) newShape(id int) Shape {
	p := e.params
	size := p.MinSize + e.rnd.Float64()*(p.MaxSize-p.MinSize)
	x := place(e.rnd.Float64(), size, e.w)
	y := place(e.rnd.Float64(), size, e.h)
	rotation := e.rnd.Float64() * 2 * math.Pi
	spin := (e.rnd.Float64() - 0.5) * 2 * p.MaxSpin
	kind := Kind(e.rnd.Intn(numKinds))
	col := e.theme.Palette[e.rnd.Intn(len(e.theme.Palette))]
	opacity := e.rnd.Float64()*0.2 + 0.05
	vx := (e.rnd.Float64() - 0.5) * 2 * p.MaxSpeed
	vy := (e.rnd.Float64() - 0.5) * 2 * p.MaxSpeed

	return Shape{
		ID:       id,
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		Size:     size,
		Rotation: rotation,
		Spin:     spin,
		Kind:     kind,
		Color:    col,
		Opacity:  opacity,
	}
}

// place maps u in [0,1) to a coordinate inside [size/2, dim-size/2].
func place(u, size, dim float64) float64 {
	lo, hi := size/2, dim-size/2
	if hi < lo {
		return dim / 2
	}
	return lo + u*(hi-lo)
}

func (e *Engine) Frame(s fx.Surface) {
	s.Clear()

	e.connect()
	e.drawGrid(s)
	e.drawLinks(s)

	for i := range e.shapes {
		sh := &e.shapes[i]
		sh.step(e.w, e.h)
		drawShape(s, sh)
	}

	e.drawSwatches(s)
	e.drawSpiral(s)
}

// connect rebuilds every shape's connection set from scratch.
func (e *Engine) connect() {
	limit := e.params.Proximity
	e.links = 0
	for i := range e.shapes {
		a := &e.shapes[i]
		a.Connections = a.Connections[:0]
		for j := range e.shapes {
			if i == j {
				continue
			}
			b := &e.shapes[j]
			if math.Hypot(a.X-b.X, a.Y-b.Y) < limit {
				a.Connections = append(a.Connections, j)
				e.links++
			}
		}
	}
}

func (e *Engine) drawGrid(s fx.Surface) {
	s.SetAlpha(0.03)
	s.SetStroke(e.theme.Grid)
	s.SetLineWidth(0.5)

	step := e.params.GridStep
	for y := 0.0; y < e.h; y += step {
		s.BeginPath()
		s.MoveTo(0, y)
		s.LineTo(e.w, y)
		s.Stroke()
	}

	run := e.h * math.Tan(math.Pi/6)
	for x := -e.h; x < e.w; x += step {
		s.BeginPath()
		s.MoveTo(x, 0)
		s.LineTo(x+run, e.h)
		s.Stroke()
	}
}

func (e *Engine) drawLinks(s fx.Surface) {
	s.SetAlpha(0.1)
	s.SetStroke(e.theme.Link)
	s.SetLineWidth(1)
	for i := range e.shapes {
		a := &e.shapes[i]
		for _, j := range a.Connections {
			b := &e.shapes[j]
			s.BeginPath()
			s.MoveTo(a.X, a.Y)
			s.LineTo(b.X, b.Y)
			s.Stroke()
		}
	}
}

func drawShape(s fx.Surface, sh *Shape) {
	s.Save()
	defer s.Restore()

	s.Translate(sh.X, sh.Y)
	s.Rotate(sh.Rotation)
	s.SetAlpha(sh.Opacity)
	s.SetFill(sh.Color)
	s.SetStroke(sh.Color)
	s.SetLineWidth(1.5)

	half := sh.Size / 2
	switch sh.Kind {
	case Circle:
		s.BeginPath()
		s.Arc(0, 0, half, 0, 2*math.Pi)
		s.Fill()
		s.Stroke()

	case Square:
		s.FillRect(-half, -half, sh.Size, sh.Size)
		s.StrokeRect(-half, -half, sh.Size, sh.Size)

	case Triangle:
		s.BeginPath()
		s.MoveTo(0, -half)
		s.LineTo(half, half)
		s.LineTo(-half, half)
		s.ClosePath()
		s.Fill()
		s.Stroke()

	case Wave:
		s.BeginPath()
		for x := -half; x <= half; x++ {
			y := math.Sin(x*0.1+sh.Rotation*3) * waveAmp
			if x == -half {
				s.MoveTo(x, y)
			} else {
				s.LineTo(x, y)
			}
		}
		s.Stroke()

	case Star:
		s.BeginPath()
		outer, inner := half, sh.Size/4
		for i := 0; i < starSpikes*2; i++ {
			r := outer
			if i%2 == 1 {
				r = inner
			}
			a := math.Pi * float64(i) / starSpikes
			x, y := math.Cos(a)*r, math.Sin(a)*r
			if i == 0 {
				s.MoveTo(x, y)
			} else {
				s.LineTo(x, y)
			}
		}
		s.ClosePath()
		s.Fill()
		s.Stroke()
	}
}

// drawSwatches paints the palette rows in the top-left and bottom-right corners.
func (e *Engine) drawSwatches(s fx.Surface) {
	s.SetAlpha(0.2)
	for i, c := range e.theme.Swatches {
		s.SetFill(c)
		s.FillRect(10+float64(i)*15, 10, 10, 10)
	}
	for i, c := range e.theme.Swatches {
		s.SetFill(c)
		s.FillRect(e.w-60+float64(i)*15, e.h-20, 10, 10)
	}
}

// drawSpiral strokes a golden-angle spiral around the centre.
func (e *Engine) drawSpiral(s fx.Surface) {
	s.SetAlpha(0.1)
	s.SetStroke(e.theme.Spiral)
	s.SetLineWidth(1)

	cx, cy := e.w/2, e.h/2
	x, y := cx, cy
	angle, radius := 0.0, spiralStart

	s.BeginPath()
	for i := 0; i < spiralSteps; i++ {
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
		angle += goldenAngle
		radius *= spiralGrowth
		x = cx + math.Cos(angle)*radius
		y = cy + math.Sin(angle)*radius
	}
	s.Stroke()
}

// Shapes returns a copy of the population.
func (e *Engine) Shapes() []Shape {
	out := make([]Shape, len(e.shapes))
	for i := range e.shapes {
		out[i] = e.shapes[i].clone()
	}
	return out
}

func (e *Engine) Bounds() (w, h float64) { return e.w, e.h }

func (e *Engine) Stats() fx.Stats {
	return fx.Stats{
		Population:  len(e.shapes),
		Connections: e.links,
	}
}
