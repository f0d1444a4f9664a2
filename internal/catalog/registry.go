package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/jenafy/cardfx/internal/coderain"
	"github.com/jenafy/cardfx/internal/config"
	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/shapefield"
	"github.com/jenafy/cardfx/internal/theme"
)

// Constructor builds a fresh engine. cfg may be nil for defaults.
type Constructor func(th theme.Theme, rnd fx.Rand, cfg *config.Config) fx.Scene

type Registry struct {
	engines map[string]Constructor
}

func NewRegistry() *Registry {
	r := &Registry{engines: make(map[string]Constructor)}

	r.engines["rain"] = func(th theme.Theme, rnd fx.Rand, cfg *config.Config) fx.Scene {
		params := coderain.DefaultParams()
		if cfg != nil {
			params = cfg.Rain
		}
		// decor noise gets its own stream so it never perturbs particles
		noise := fx.NewRand(int64(rnd.Intn(math.MaxInt32)) + 1)
		return coderain.New(th, rnd, coderain.WithNoise(noise), coderain.WithParams(params))
	}
	r.engines["shapes"] = func(th theme.Theme, rnd fx.Rand, cfg *config.Config) fx.Scene {
		params := shapefield.DefaultParams()
		if cfg != nil {
			params = cfg.Shapes
		}
		return shapefield.New(th, rnd, shapefield.WithParams(params))
	}

	return r
}

// Register adds or replaces an engine constructor.
func (r *Registry) Register(name string, c Constructor) {
	r.engines[name] = c
}

func (r *Registry) New(name string, th theme.Theme, rnd fx.Rand, cfg *config.Config) (fx.Scene, error) {
	fn, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", fx.ErrUnknownEngine, name)
	}
	if rnd == nil {
		rnd = fx.NewRand(0)
	}
	return fn(th, rnd, cfg), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.engines[name]
	return ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
