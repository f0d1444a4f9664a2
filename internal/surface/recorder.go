package surface

import (
	"image/color"
	"sync"

	"github.com/jenafy/cardfx/internal/fx"
)

// Recorder is a Surface that only counts what it is asked to draw.
type Recorder struct {
	mu     sync.Mutex
	w, h   float64
	counts map[string]int
	draws  int
	depth  int
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{w: w, h: h, counts: make(map[string]int)}
}

func (r *Recorder) SetSize(w, h float64) {
	r.mu.Lock()
	r.w, r.h = w, h
	r.mu.Unlock()
}

func (r *Recorder) Size() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w, r.h
}

func (r *Recorder) op(name string, draw bool) {
	r.mu.Lock()
	r.counts[name]++
	if draw {
		r.draws++
	}
	r.mu.Unlock()
}

// Draws returns the number of calls that put ink on the surface,
// including Clear.
func (r *Recorder) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}

// Count returns how many times the named method was called.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[name]
}

// Depth returns the current Save/Restore nesting.
func (r *Recorder) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depth
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.counts = make(map[string]int)
	r.draws = 0
	r.mu.Unlock()
}

func (r *Recorder) Clear() { r.op("Clear", true) }

func (r *Recorder) Save() {
	r.op("Save", false)
	r.mu.Lock()
	r.depth++
	r.mu.Unlock()
}

func (r *Recorder) Restore() {
	r.op("Restore", false)
	r.mu.Lock()
	if r.depth > 0 {
		r.depth--
	}
	r.mu.Unlock()
}

func (r *Recorder) Translate(x, y float64)             { r.op("Translate", false) }
func (r *Recorder) Rotate(theta float64)               { r.op("Rotate", false) }
func (r *Recorder) SetAlpha(a float64)                 { r.op("SetAlpha", false) }
func (r *Recorder) SetFill(c color.RGBA)               { r.op("SetFill", false) }
func (r *Recorder) SetStroke(c color.RGBA)             { r.op("SetStroke", false) }
func (r *Recorder) SetLineWidth(w float64)             { r.op("SetLineWidth", false) }
func (r *Recorder) SetGlow(blur float64, c color.RGBA) { r.op("SetGlow", false) }
func (r *Recorder) BeginPath()                         { r.op("BeginPath", false) }
func (r *Recorder) MoveTo(x, y float64)                { r.op("MoveTo", false) }
func (r *Recorder) LineTo(x, y float64)                { r.op("LineTo", false) }
func (r *Recorder) Arc(x, y, rad, start, end float64)  { r.op("Arc", false) }
func (r *Recorder) ClosePath()                         { r.op("ClosePath", false) }
func (r *Recorder) Fill()                              { r.op("Fill", true) }
func (r *Recorder) Stroke()                            { r.op("Stroke", true) }
func (r *Recorder) FillRect(x, y, w, h float64)        { r.op("FillRect", true) }
func (r *Recorder) StrokeRect(x, y, w, h float64)      { r.op("StrokeRect", true) }
func (r *Recorder) FillText(s string, x, y, size float64) {
	r.op("FillText", true)
}

var _ fx.Surface = (*Recorder)(nil)
