package fx

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Factory builds an independent scene and surface for one ensemble member.
type Factory func(seed int64) (Scene, Surface)

// RunResult summarises one headless ensemble member.
type RunResult struct {
	Seed           int64
	Frames         uint64
	Elapsed        time.Duration
	Final          Stats
	PeakPopulation int
}

// Ensemble runs several independently seeded scenes in parallel. Members
// share nothing; each owns its scene, surface and runner.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
	opts      []RunnerOption
}

func NewEnsemble(f Factory, numRuns int, seedStart int64, opts ...RunnerOption) *Ensemble {
	return &Ensemble{factory: f, numRuns: numRuns, seedStart: seedStart, opts: opts}
}

// Run steps every member for the given number of frames.
func (e *Ensemble) Run(ctx context.Context, frames int) ([]RunResult, error) {
	results := make([]RunResult, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			seed := e.seedStart + int64(idx)
			scene, surface := e.factory(seed)

			peak := &peakObserver{}
			opts := append([]RunnerOption{WithObserver(peak)}, e.opts...)
			r := NewRunner(scene, opts...)
			if err := r.Start(surface, nil); err != nil {
				return err
			}
			defer r.Stop()

			start := time.Now()
			if err := r.RunFrames(ctx, frames); err != nil {
				return err
			}

			results[idx] = RunResult{
				Seed:           seed,
				Frames:         r.Frames(),
				Elapsed:        time.Since(start),
				Final:          peak.last,
				PeakPopulation: peak.peak,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type peakObserver struct {
	peak int
	last Stats
}

func (p *peakObserver) OnFrame(_ uint64, s Stats) {
	p.last = s
	if s.Population > p.peak {
		p.peak = s.Population
	}
}
