// Package state holds the single game state value and the helpers that
// derive new states from it. A GameStateData is replaced wholesale on every
// change: helpers copy any slice or map they modify, so a value handed out
// earlier never changes underneath its holder.
package state

import (
	"time"

	"github.com/vovakirdan/setfall/internal/assets"
	"github.com/vovakirdan/setfall/internal/game/entity"
)

// State is a game state machine state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateWon
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Finished reports whether the state ends a session.
func (s State) Finished() bool {
	return s == StateGameOver || s == StateWon
}

// Deferred is a scheduled state transition. It is the only record of a
// pending game over or win; the tick that passes DueAt applies it.
type Deferred struct {
	Target State
	DueAt  time.Time
}

// SetStat is a historical success/failure count for one set.
type SetStat struct {
	Success int
	Failure int
}

// GameStateData is the aggregate root of a game session.
type GameStateData struct {
	State   State
	Score   int
	Lives   int
	Correct int
	Total   int // Sets that must be completed to win this session

	Icons         []entity.Icon
	CompletedSets map[string]bool

	LastSpawn    time.Time
	SpawnBlocked bool
	NextID       int
	Ticks        int

	TitleIcons []entity.TitleIcon
	Images     *assets.Cache

	Pending *Deferred
	Wave    *WaveState
}

// New creates an idle state sharing the given image cache.
func New(images *assets.Cache) GameStateData {
	return GameStateData{
		State:         StateIdle,
		CompletedSets: map[string]bool{},
		Images:        images,
		NextID:        1,
	}
}

// Session describes how a playing session starts.
type Session struct {
	Total int
	Score int
	Lives int
	Wave  *WaveState
}

// BeginSession returns a fresh playing state: icons, completed sets, the
// spawn timer and any pending transition are cleared. Title icons, the image
// cache and the id counter carry over.
func (s GameStateData) BeginSession(sess Session) GameStateData {
	next := GameStateData{
		State:         StatePlaying,
		Score:         sess.Score,
		Lives:         sess.Lives,
		Total:         sess.Total,
		CompletedSets: map[string]bool{},
		NextID:        s.NextID,
		TitleIcons:    s.TitleIcons,
		Images:        s.Images,
		Wave:          sess.Wave.Clone(),
	}
	if next.NextID < 1 {
		next.NextID = 1
	}
	return next
}

// ResetIdle returns an idle state keeping only the title icons, image cache and id counter.
func (s GameStateData) ResetIdle() GameStateData {
	next := New(s.Images)
	next.TitleIcons = s.TitleIcons
	next.NextID = s.NextID
	return next
}

// WithState returns s in the given machine state.
func (s GameStateData) WithState(st State) GameStateData {
	s.State = st
	return s
}

// WithIcons returns s with a new icon list.
func (s GameStateData) WithIcons(icons []entity.Icon) GameStateData {
	s.Icons = icons
	return s
}

// ReplaceIcon returns s with the icon of the same id replaced.
func (s GameStateData) ReplaceIcon(ic entity.Icon) GameStateData {
	icons := make([]entity.Icon, len(s.Icons))
	copy(icons, s.Icons)
	for i := range icons {
		if icons[i].ID == ic.ID {
			icons[i] = ic
		}
	}
	s.Icons = icons
	return s
}

// AddIcon returns s with ic appended and the id counter advanced past it.
func (s GameStateData) AddIcon(ic entity.Icon) GameStateData {
	icons := make([]entity.Icon, len(s.Icons), len(s.Icons)+1)
	copy(icons, s.Icons)
	s.Icons = append(icons, ic)
	if ic.ID >= s.NextID {
		s.NextID = ic.ID + 1
	}
	return s
}

// WithCompleted returns s with code added to the completed sets.
func (s GameStateData) WithCompleted(code string) GameStateData {
	done := make(map[string]bool, len(s.CompletedSets)+1)
	for k := range s.CompletedSets {
		done[k] = true
	}
	done[code] = true
	s.CompletedSets = done
	return s
}

// ClearCompleted returns s with no completed sets.
func (s GameStateData) ClearCompleted() GameStateData {
	s.CompletedSets = map[string]bool{}
	return s
}

// ActiveIcons returns the icons that are still falling.
func (s GameStateData) ActiveIcons() []entity.Icon {
	var out []entity.Icon
	for _, ic := range s.Icons {
		if ic.Active() {
			out = append(out, ic)
		}
	}
	return out
}

// ActiveCount returns the number of falling icons.
func (s GameStateData) ActiveCount() int {
	n := 0
	for _, ic := range s.Icons {
		if ic.Active() {
			n++
		}
	}
	return n
}

// OldestActive returns the active icon that spawned first.
func (s GameStateData) OldestActive() (entity.Icon, bool) {
	var oldest entity.Icon
	found := false
	for _, ic := range s.Icons {
		if ic.Active() && (!found || ic.ID < oldest.ID) {
			oldest = ic
			found = true
		}
	}
	return oldest, found
}

// ReportedLives returns lives clamped at zero, as shown to the host.
func (s GameStateData) ReportedLives() int {
	if s.Lives < 0 {
		return 0
	}
	return s.Lives
}

// Schedule records a deferred transition to target at due and blocks
// spawning. Only one transition may be pending; later requests are ignored
// and reported as false.
func (s GameStateData) Schedule(target State, due time.Time) (GameStateData, bool) {
	if s.Pending != nil {
		return s, false
	}
	s.Pending = &Deferred{Target: target, DueAt: due}
	s.SpawnBlocked = true
	return s, true
}

// ApplyDue applies the pending transition if now has reached its due time.
func (s GameStateData) ApplyDue(now time.Time) (GameStateData, bool) {
	if s.Pending == nil || now.Before(s.Pending.DueAt) {
		return s, false
	}
	s.State = s.Pending.Target
	s.Pending = nil
	return s, true
}
