package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/setfall/internal/assets"
	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/core"
	"github.com/vovakirdan/setfall/internal/sets"
	"github.com/vovakirdan/setfall/internal/storage"
)

// Host bundles what every game session needs. Store, Images and Logger may
// be nil.
type Host struct {
	Runtime core.RuntimeConfig
	Config  config.GameConfig
	Sets    []sets.Set
	Images  *assets.Cache
	Store   *storage.Store
	Logger  *log.Logger
	Player  string
}

func (h Host) logger() *log.Logger {
	if h.Logger == nil {
		return log.New(io.Discard)
	}
	return h.Logger
}

func (h Host) tickRate() int {
	if h.Runtime.TickRate <= 0 {
		return 60
	}
	return h.Runtime.TickRate
}

func (h Host) player() string {
	if h.Player == "" {
		return "local"
	}
	return h.Player
}
