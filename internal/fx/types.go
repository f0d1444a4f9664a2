package fx

import (
	"image/color"
	"math/rand"
	"time"
)

// Surface is a 2D drawing context. Coordinates are logical pixels with the
// origin at the top-left corner; y grows downwards.
type Surface interface {
	Size() (w, h float64)
	Clear()

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)

	SetAlpha(a float64)
	SetFill(c color.RGBA)
	SetStroke(c color.RGBA)
	SetLineWidth(w float64)
	// SetGlow enables a soft glow of the given blur radius. Zero disables it.
	SetGlow(blur float64, c color.RGBA)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, r, start, end float64)
	ClosePath()
	Fill()
	Stroke()

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	FillText(text string, x, y, size float64)
}

// Rand is the random source engines draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed means time-seeded.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Scene is an animation engine: it owns its population exclusively and
// advances and draws it once per Frame.
type Scene interface {
	Name() string
	// Init creates the initial population for a surface of size w×h.
	Init(w, h float64)
	// Resize updates the bounds without touching the population.
	Resize(w, h float64)
	Frame(s Surface)
}

// Stats is a snapshot of a scene's population after a frame.
type Stats struct {
	Population  int
	Connections int
	MeanLife    float64
}

// StatsReporter is implemented by scenes that expose population stats.
type StatsReporter interface {
	Stats() Stats
}

// Observer is notified after every frame a runner draws.
type Observer interface {
	OnFrame(frame uint64, stats Stats)
}

// State is the runner lifecycle state.
type State int

const (
	Created State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Point is a logical-pixel position.
type Point struct {
	X, Y float64
}
