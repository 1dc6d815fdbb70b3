// Package registry provides a global registry of game modes.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/setfall/internal/core"
	"github.com/vovakirdan/setfall/internal/game/engine"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/game/wave"
)

// Game is the command surface every mode exposes to a host.
// Commands that make no sense in the current state are silent no-ops.
type Game interface {
	// ID returns the mode identifier used by the CLI and score storage.
	ID() string

	Start()
	Pause()
	Resume()
	Reset()
	CheckAnswer(text string) bool
	HandleClick()
	SkipCurrentIcon()

	// Destroy stops the game's tick loop; every later call is a no-op.
	Destroy()

	UpdateSize(width float64)
	UpdateStatistics(stats map[string]state.SetStat)
	UpdateHintsDisabled(disabled bool)

	// Render draws the current screen into dst.
	Render(dst *core.Screen)

	State() state.State
	Snapshot() state.GameStateData
	Message() string
	HintsDisabled() bool
}

// Resumable is implemented by modes that can checkpoint and resume.
type Resumable interface {
	Game
	Checkpoint() (wave.Checkpoint, bool)
	Restore(cp wave.Checkpoint) error
}

// Params are passed to a factory when a mode is created.
type Params struct {
	Options      engine.Options
	OnCheckpoint func(cp wave.Checkpoint) // Used by resumable modes
}

// Factory creates a running game for a mode.
type Factory func(p Params) Game

// Info contains metadata about a registered mode.
type Info struct {
	ID          string
	Title       string
	Description string
	Resumable   bool
}

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns information about all registered modes, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a mode by its ID.
// Returns an error if the mode is not registered.
func Create(id string, p Params) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(p), nil
}

// Lookup returns the metadata for a mode.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
