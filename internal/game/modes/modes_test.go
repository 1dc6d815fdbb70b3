package modes

import (
	"testing"
	"time"

	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/game/engine"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/registry"
	"github.com/vovakirdan/setfall/internal/sets"
)

func params() registry.Params {
	return registry.Params{Options: engine.Options{
		Config:    config.DefaultGameConfig(),
		Sets:      []sets.Set{{Name: "Alpha", Code: "A"}, {Name: "Beta", Code: "B"}},
		Scheduler: engine.NewManualScheduler(time.Unix(0, 0), 16*time.Millisecond),
		Seed:      1,
	}}
}

func TestModesRegistered(t *testing.T) {
	tests := []struct {
		id        string
		resumable bool
	}{
		{Classic, false},
		{Waves, true},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			info, ok := registry.Lookup(tc.id)
			if !ok {
				t.Fatalf("Mode %q not registered", tc.id)
			}
			if info.Resumable != tc.resumable {
				t.Errorf("Resumable = %v", info.Resumable)
			}

			g, err := registry.Create(tc.id, params())
			if err != nil {
				t.Fatal(err)
			}
			defer g.Destroy()

			if g.ID() != tc.id {
				t.Errorf("ID = %q", g.ID())
			}
			if _, ok := g.(registry.Resumable); ok != tc.resumable {
				t.Errorf("Resumable interface = %v", ok)
			}

			g.HandleClick()
			if g.State() != state.StatePlaying {
				t.Errorf("State = %s after click", g.State())
			}
		})
	}
}

func TestClassicHasNoWaves(t *testing.T) {
	g, _ := registry.Create(Classic, params())
	defer g.Destroy()
	g.Start()
	if g.Snapshot().Wave != nil {
		t.Error("Classic mode should not track waves")
	}
}
