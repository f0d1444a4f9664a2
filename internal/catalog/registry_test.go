package catalog

import (
	"errors"
	"testing"

	"github.com/jenafy/cardfx/internal/coderain"
	"github.com/jenafy/cardfx/internal/config"
	"github.com/jenafy/cardfx/internal/fx"
	"github.com/jenafy/cardfx/internal/shapefield"
	"github.com/jenafy/cardfx/internal/surface"
	"github.com/jenafy/cardfx/internal/theme"
)

func TestRegistryNew(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		want string
	}{
		{"rain", "rain"},
		{"shapes", "shapes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := r.New(tt.name, theme.Blue, fx.NewRand(1), nil)
			if err != nil {
				t.Fatalf("New(%q): %v", tt.name, err)
			}
			if scene.Name() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, scene.Name())
			}
		})
	}
}

func TestRegistryUnknown(t *testing.T) {
	_, err := NewRegistry().New("fireworks", theme.Blue, nil, nil)
	if !errors.Is(err, fx.ErrUnknownEngine) {
		t.Errorf("expected ErrUnknownEngine, got %v", err)
	}
}

func TestRegistryUsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Shapes.Count = 5

	scene, err := NewRegistry().New("shapes", theme.Pink, fx.NewRand(1), cfg)
	if err != nil {
		t.Fatal(err)
	}
	scene.Init(200, 200)
	scene.Frame(surface.NewRecorder(200, 200))

	if n := len(scene.(*shapefield.Engine).Shapes()); n != 5 {
		t.Errorf("expected 5 shapes, got %d", n)
	}
}

func TestRainDeterministicThroughRegistry(t *testing.T) {
	r := NewRegistry()
	run := func() []coderain.Particle {
		scene, _ := r.New("rain", theme.Green, fx.NewRand(21), nil)
		scene.Init(120, 120)
		rec := surface.NewRecorder(120, 120)
		for i := 0; i < 60; i++ {
			scene.Frame(rec)
		}
		return scene.(*coderain.Engine).Particles()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("particle counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Glyph != b[i].Glyph {
			t.Errorf("particle %d differs", i)
		}
	}
}

func TestNames(t *testing.T) {
	names := NewRegistry().Names()
	if len(names) != 2 || names[0] != "rain" || names[1] != "shapes" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestMembers(t *testing.T) {
	r := NewRegistry()
	for _, m := range Members {
		if !r.Has(m.Engine) {
			t.Errorf("%s uses unregistered engine %s", m.Name, m.Engine)
		}
		if _, err := theme.Get(m.Theme); err != nil {
			t.Errorf("%s: %v", m.Name, err)
		}
	}

	m, ok := MemberFor("shapes")
	if !ok || m.Theme != "pink" {
		t.Errorf("unexpected member for shapes: %+v", m)
	}
	if _, ok := MemberFor("none"); ok {
		t.Error("expected no member")
	}
}
