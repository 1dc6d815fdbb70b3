// Package modes registers the playable game modes.
// Import it for its side effects.
package modes

import (
	"github.com/vovakirdan/setfall/internal/game/engine"
	"github.com/vovakirdan/setfall/internal/game/wave"
	"github.com/vovakirdan/setfall/internal/registry"
)

// Mode identifiers.
const (
	Classic = "classic"
	Waves   = wave.Mode
)

// classic is the plain engine: name every configured set once.
type classic struct {
	*engine.Engine
}

func (classic) ID() string { return Classic }

func init() {
	registry.Register(registry.Info{
		ID:          Classic,
		Title:       "Classic",
		Description: "Name every set before it lands",
	}, func(p registry.Params) registry.Game {
		return classic{Engine: engine.New(p.Options)}
	})

	registry.Register(registry.Info{
		ID:          Waves,
		Title:       "Waves",
		Description: "Endless batches of new sets with checkpoints",
		Resumable:   true,
	}, func(p registry.Params) registry.Game {
		return wave.New(p.Options, p.OnCheckpoint)
	})
}

var (
	_ registry.Game      = classic{}
	_ registry.Resumable = (*wave.Game)(nil)
)
