// Package wave extends the classic game with waves: the set list is played
// in batches, each wave drawing only sets never shown before, with lives and
// score carried over. A checkpoint is emitted after every completed wave so
// a long session can be resumed later.
package wave

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/setfall/internal/game/engine"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/sets"
)

// DefaultSize is the wave size used when the configuration has none.
const DefaultSize = 10

// Game decorates an engine with wave progression. Commands not overridden
// here go straight to the engine.
type Game struct {
	*engine.Engine

	mu           sync.Mutex
	rng          *rand.Rand
	sets         []sets.Set
	size         int
	lives        int
	onCheckpoint func(Checkpoint)
	now          func() time.Time
}

// New creates a wave game. onCheckpoint, if set, receives a checkpoint after
// each completed wave; it runs outside the engine lock.
func New(opts engine.Options, onCheckpoint func(Checkpoint)) *Game {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	size := opts.Config.Waves.Size
	if size <= 0 {
		size = DefaultSize
	}

	g := &Game{
		rng:          rand.New(rand.NewSource(seed ^ 0x5e7fa11)),
		sets:         append([]sets.Set(nil), opts.Sets...),
		size:         size,
		lives:        opts.Config.Gameplay.Lives,
		onCheckpoint: onCheckpoint,
		now:          time.Now,
	}
	if c, ok := opts.Scheduler.(engine.Clock); ok {
		g.now = c.Now
	}
	opts.Continue = g.advance
	g.Engine = engine.New(opts)
	return g
}

// ID returns the mode name.
func (g *Game) ID() string {
	return Mode
}

// Start begins wave 1 with a fresh history.
func (g *Game) Start() {
	r, ok := g.round(1, nil, 0, g.lives)
	if !ok {
		return
	}
	g.Begin(r)
}

// HandleClick starts a wave session from the idle and finished screens and
// otherwise behaves like the classic click.
func (g *Game) HandleClick() {
	switch g.State() {
	case state.StateIdle, state.StateGameOver, state.StateWon:
		g.Start()
	default:
		g.Engine.HandleClick()
	}
}

// Restore resumes from a checkpoint at the wave after the one it records.
func (g *Game) Restore(cp Checkpoint) error {
	if err := cp.Validate(); err != nil {
		return err
	}
	r, ok := g.round(cp.CurrentWave+1, cp.SetsShownHistory, cp.Score, cp.Lives)
	if !ok {
		return fmt.Errorf("%w: no sets left after wave %d", ErrCheckpointInvalid, cp.CurrentWave)
	}
	g.UpdateHintsDisabled(cp.HintsDisabled)
	g.Begin(r)
	return nil
}

// Checkpoint describes the current session as of its last completed wave.
// It reports false when no wave session is running.
func (g *Game) Checkpoint() (Checkpoint, bool) {
	s := g.Snapshot()
	w := s.Wave
	if w == nil || s.State == state.StateIdle {
		return Checkpoint{}, false
	}

	// History includes the wave in progress; a resume replays that wave with fresh sets
	current := make(map[string]bool, len(w.SetCodes))
	for _, c := range w.SetCodes {
		current[c] = true
	}
	var history []string
	for _, c := range w.History {
		if !current[c] {
			history = append(history, c)
		}
	}
	return g.checkpoint(w.Index-1, w.LivesAtStart, w.ScoreAtStart, history), true
}

func (g *Game) checkpoint(wave, lives, score int, history []string) Checkpoint {
	return Checkpoint{
		Version:          CheckpointVersion,
		Timestamp:        g.now().UnixMilli(),
		GameMode:         Mode,
		CurrentWave:      wave,
		Lives:            lives,
		Score:            score,
		SetsShownHistory: append([]string(nil), history...),
		HintsDisabled:    g.HintsDisabled(),
	}
}

// advance is the engine's continue hook. It runs under the engine lock, so
// anything that calls back into the engine is deferred to Started.
func (g *Game) advance(s state.GameStateData) (engine.Round, bool) {
	w := s.Wave
	if w == nil {
		return engine.Round{}, false
	}
	r, ok := g.round(w.Index+1, w.History, s.Score, s.Lives)
	if !ok {
		return engine.Round{}, false
	}

	done := w.Clone()
	lives, score := s.Lives, s.Score
	r.Started = func() {
		if g.onCheckpoint != nil {
			g.onCheckpoint(g.checkpoint(done.Index, lives, score, done.History))
		}
	}
	return r, true
}

// round builds wave index from the sets not in history. It reports false
// when every set has been shown.
func (g *Game) round(index int, history []string, score, lives int) (engine.Round, bool) {
	shown := make(map[string]bool, len(history))
	for _, c := range history {
		shown[c] = true
	}
	var fresh []sets.Set
	for _, set := range g.sets {
		if !shown[set.Code] {
			fresh = append(fresh, set)
		}
	}
	if len(fresh) == 0 {
		return engine.Round{}, false
	}

	g.mu.Lock()
	g.rng.Shuffle(len(fresh), func(i, j int) { fresh[i], fresh[j] = fresh[j], fresh[i] })
	g.mu.Unlock()
	if len(fresh) > g.size {
		fresh = fresh[:g.size]
	}

	codes := sets.Codes(fresh)
	ws := &state.WaveState{
		Index:        index,
		SetCodes:     codes,
		History:      append(append([]string(nil), history...), codes...),
		LivesAtStart: lives,
		ScoreAtStart: score,
	}
	return engine.Round{
		Sets:    fresh,
		Score:   score,
		Lives:   lives,
		Wave:    ws,
		Message: fmt.Sprintf("Wave %d", index),
	}, true
}

// Remaining returns how many sets have not been shown in this session.
func (g *Game) Remaining() int {
	w := g.Snapshot().Wave
	n := 0
	for _, set := range g.sets {
		if !w.Shown(set.Code) {
			n++
		}
	}
	return n
}
