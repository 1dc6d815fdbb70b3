// Package system implements the game rules. Each function takes a state
// value and returns a new one plus the events it produced; none of them
// mutate their input.
package system

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/game/entity"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/sets"
)

// ImageRequester starts a background image load. It must not block.
type ImageRequester interface {
	Request(url string)
}

// Env is the read-only context a system runs in for one tick or command.
type Env struct {
	Config config.GameConfig
	Sets   []sets.Set // Sets eligible in the current session
	Rand   *rand.Rand
	Now    time.Time
	Speed  float64 // Current base fall speed after difficulty scaling
	Images ImageRequester
}

func (e Env) graceDue() time.Time {
	return e.Now.Add(time.Duration(e.Config.Gameplay.GraceMs) * time.Millisecond)
}

// EventKind identifies what a system did.
type EventKind int

const (
	EventSpawned   EventKind = iota // Icon entered the field
	EventCorrect                    // Icon answered; Points set
	EventMissed                     // Icon reached the ground or was skipped
	EventScheduled                  // Deferred transition recorded; Target set
)

// Event is something externally meaningful that happened during a step.
type Event struct {
	Kind   EventKind
	Icon   entity.Icon
	Points int
	Target state.State
}
