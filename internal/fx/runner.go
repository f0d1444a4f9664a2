package fx

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// FrameInterval is the default tick period, one display refresh at 60 Hz.
const FrameInterval = time.Second / 60

// Runner drives one Scene on one Surface. It replaces a self-rescheduling
// frame callback with an explicit loop gated by an active flag: Stop clears
// the flag and no frame is drawn after that.
type Runner struct {
	scene     Scene
	log       *zap.Logger
	observers []Observer

	mu      sync.Mutex
	state   State
	surface Surface
	unsub   func()
	done    chan struct{}

	active        atomic.Bool
	resizePending atomic.Bool
	frames        atomic.Uint64
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

func NewRunner(scene Scene, opts ...RunnerOption) *Runner {
	r := &Runner{
		scene: scene,
		log:   zap.NewNop(),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(zap.String("engine", scene.Name()))
	return r
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Scene() Scene { return r.scene }

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Frames returns the number of frames drawn so far.
func (r *Runner) Frames() uint64 { return r.frames.Load() }

// Start binds the runner to a surface and begins accepting frames. A nil
// surface leaves the runner inert: no error, no frames, state unchanged.
// Resize notifications from hub are applied at the top of the next frame.
func (r *Runner) Start(s Surface, hub *ResizeHub) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case Running:
		return ErrRunning
	case Stopped:
		return ErrStopped
	}
	if s == nil {
		r.log.Debug("surface unavailable, staying inert")
		return nil
	}

	r.surface = s
	w, h := s.Size()
	r.scene.Init(w, h)

	if hub != nil {
		r.unsub = hub.OnResize(func() { r.resizePending.Store(true) })
	}

	r.state = Running
	r.active.Store(true)
	r.log.Debug("engine started", zap.Float64("width", w), zap.Float64("height", h))
	return nil
}

// Step runs exactly one frame if the runner is active and reports whether
// the loop should continue.
func (r *Runner) Step() bool {
	if !r.active.Load() {
		return false
	}

	if r.resizePending.Swap(false) {
		w, h := r.surface.Size()
		r.scene.Resize(w, h)
		r.log.Debug("surface resized", zap.Float64("width", w), zap.Float64("height", h))
	}

	r.scene.Frame(r.surface)
	frame := r.frames.Add(1)

	if len(r.observers) > 0 {
		var stats Stats
		if sr, ok := r.scene.(StatsReporter); ok {
			stats = sr.Stats()
		}
		for _, o := range r.observers {
			o.OnFrame(frame, stats)
		}
	}
	return true
}

// Run steps the scene every interval until Stop is called or ctx is done.
// An inert or stopped runner returns immediately.
func (r *Runner) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = FrameInterval
	}
	if !r.active.Load() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.done:
			return nil
		case <-ticker.C:
			if !r.Step() {
				return nil
			}
		}
	}
}

// RunFrames steps the scene n times without pacing. It stops early if the
// runner is stopped or ctx is done.
func (r *Runner) RunFrames(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !r.Step() {
			return nil
		}
	}
	return nil
}

// Stop halts the loop and unregisters the resize handler. It is idempotent.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == Stopped {
		return
	}
	r.active.Store(false)
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
	prev := r.state
	r.state = Stopped
	close(r.done)
	r.log.Debug("engine stopped", zap.Stringer("from", prev), zap.Uint64("frames", r.frames.Load()))
}
