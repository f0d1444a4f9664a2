package metrics

import "github.com/jenafy/cardfx/internal/fx"

// DrawCounter is satisfied by surfaces that count their draw calls.
type DrawCounter interface {
	Draws() int
}

// DrawCalls averages draw calls per frame as reported by a counting surface.
type DrawCalls struct {
	name    string
	src     DrawCounter
	last    int
	total   int
	samples int
	// Current holds the calls made by the most recent frame.
	Current int
}

func NewDrawCalls(src DrawCounter) *DrawCalls {
	return &DrawCalls{name: "draw_calls", src: src, last: src.Draws()}
}

func (d *DrawCalls) Name() string { return d.name }

func (d *DrawCalls) Observe(_ uint64, _ fx.Stats) {
	n := d.src.Draws()
	d.Current = n - d.last
	d.last = n
	d.total += d.Current
	d.samples++
}

func (d *DrawCalls) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.total) / float64(d.samples)
}

func (d *DrawCalls) Reset() {
	d.last = d.src.Draws()
	d.total = 0
	d.samples = 0
	d.Current = 0
}
