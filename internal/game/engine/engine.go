// Package engine owns the game's single mutable state cell and exposes the
// command surface a host drives. Every rule lives in the pure systems; the
// engine only composes them, schedules ticks and reports changes.
package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/setfall/internal/assets"
	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/core"
	"github.com/vovakirdan/setfall/internal/game/entity"
	"github.com/vovakirdan/setfall/internal/game/physics"
	"github.com/vovakirdan/setfall/internal/game/screens"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/game/system"
	"github.com/vovakirdan/setfall/internal/game/util"
	"github.com/vovakirdan/setfall/internal/sets"
)

// Callbacks are fired on externally meaningful changes. Any may be nil.
// They run after the engine has released its lock, so a callback may call
// back into the engine.
type Callbacks struct {
	OnScoreChange  func(score int)
	OnLivesChange  func(lives int)
	OnStateChange  func(st state.State)
	OnCorrectGuess func(name string, points int)
	OnMissed       func(name string)
	OnMessage      func(text string, d time.Duration)
	OnProgress     func(completed, total int)
	OnGameComplete func(r Result)
	OnSetResult    func(code string, success bool)
}

// Result summarizes a finished session.
type Result struct {
	Won     bool
	Score   int
	Correct int
	Total   int
	Wave    int // Zero outside wave mode
}

// Round describes one playing session: the sets in play and the carried
// score and lives.
type Round struct {
	Sets    []sets.Set
	Score   int
	Lives   int
	Wave    *state.WaveState
	Message string // Shown when the round begins
	Started func() // Runs after the round has begun and the lock is released
}

// ContinueFunc is consulted when a round is won. Returning true begins the
// returned round in place of the won state.
type ContinueFunc func(s state.GameStateData) (Round, bool)

// Options configures an engine.
type Options struct {
	Config    config.GameConfig
	Sets      []sets.Set
	Callbacks Callbacks
	Scheduler Scheduler     // Defaults to a 60 fps TickerScheduler
	Images    *assets.Cache // Optional; icons draw as placeholders without it
	Seed      int64         // Zero picks a time-based seed
	Canvas    *core.Screen  // Optional; redrawn after every tick
	Continue  ContinueFunc
}

// Engine runs one game.
type Engine struct {
	mu sync.Mutex

	cfg        config.GameConfig
	sets       []sets.Set // Every configured set
	roundSets  []sets.Set // Sets eligible in the current round
	cb         Callbacks
	rng        *rand.Rand
	clock      func() time.Time
	difficulty *config.DifficultyManager
	canvas     *core.Screen
	cont       ContinueFunc

	state        state.GameStateData
	stats        map[string]state.SetStat
	message      string
	messageUntil time.Time

	handle    Handle
	destroyed bool
}

// New creates an idle engine and starts its tick loop.
func New(opts Options) *Engine {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = NewTickerScheduler(60)
	}
	clock := time.Now
	if c, ok := sched.(Clock); ok {
		clock = c.Now
	}

	e := &Engine{
		cfg:        opts.Config,
		sets:       append([]sets.Set(nil), opts.Sets...),
		cb:         opts.Callbacks,
		rng:        rand.New(rand.NewSource(seed)),
		clock:      clock,
		difficulty: config.NewDifficultyManager(opts.Config.Difficulty),
		canvas:     opts.Canvas,
		cont:       opts.Continue,
		stats:      map[string]state.SetStat{},
	}
	e.state = state.New(opts.Images)
	e.state.TitleIcons = e.titleIcons()

	e.handle = sched.Start(e.tick)
	return e
}

func (e *Engine) titleIcons() []entity.TitleIcon {
	f := e.cfg.Field
	picked := util.Sample(e.rng, e.sets, e.cfg.Physics.TitleIcons)
	titles := make([]entity.TitleIcon, 0, len(picked))
	for _, set := range picked {
		titles = append(titles, entity.TitleIcon{
			X:     util.RandomRange(e.rng, 0, f.Width-f.IconSize),
			Y:     util.RandomRange(e.rng, -f.IconSize, f.Height),
			URL:   set.IconURL,
			Code:  set.Code,
			Speed: e.cfg.Physics.TitleSpeed * (0.5 + e.rng.Float64()),
		})
		e.state.Images.Request(set.IconURL)
	}
	return titles
}

func (e *Engine) env(now time.Time) system.Env {
	speed := e.cfg.Physics.BaseSpeed
	if e.difficulty != nil {
		speed = e.difficulty.Speed(speed, e.state.Correct, e.state.Ticks)
	}
	var images system.ImageRequester
	if e.state.Images != nil {
		images = e.state.Images
	}
	return system.Env{
		Config: e.cfg,
		Sets:   e.roundSets,
		Rand:   e.rng,
		Now:    now,
		Speed:  speed,
		Images: images,
	}
}

// tick advances the simulation by one frame.
func (e *Engine) tick(now time.Time) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}

	old := e.state
	var n notes

	s := old
	if s.State == state.StatePlaying {
		var applied bool
		s, applied = s.ApplyDue(now)
		if applied {
			s = e.finish(s, now, &n)
		}
	}
	s = physics.Drift(s, e.cfg)

	e.state = s
	var events []system.Event
	e.state, events = physics.Step(e.state, e.env(now))

	if e.message != "" && !now.Before(e.messageUntil) {
		e.message = ""
	}
	if e.canvas != nil {
		screens.Render(e.canvas, e.view())
	}

	e.report(old, events, &n)
	e.mu.Unlock()
	n.fire()
}

// finish handles a just-applied deferred transition. A won round may be
// continued by the Continue hook instead of ending.
func (e *Engine) finish(s state.GameStateData, now time.Time, n *notes) state.GameStateData {
	if s.State == state.StateWon && e.cont != nil {
		if r, ok := e.cont(s); ok && len(r.Sets) > 0 {
			return e.begin(s, r, now, n)
		}
	}

	res := Result{
		Won:     s.State == state.StateWon,
		Score:   s.Score,
		Correct: s.Correct,
		Total:   s.Total,
	}
	if s.Wave != nil {
		res.Wave = s.Wave.Index
	}
	if f := e.cb.OnGameComplete; f != nil {
		n.add(func() { f(res) })
	}
	return s
}

func (e *Engine) begin(s state.GameStateData, r Round, now time.Time, n *notes) state.GameStateData {
	e.roundSets = append([]sets.Set(nil), r.Sets...)
	s = s.BeginSession(state.Session{
		Total: len(r.Sets),
		Score: r.Score,
		Lives: r.Lives,
		Wave:  r.Wave,
	})
	if r.Message != "" {
		e.showMessage(r.Message, now, n)
	}
	if r.Started != nil {
		n.add(r.Started)
	}
	return s
}

func (e *Engine) showMessage(text string, now time.Time, n *notes) {
	d := time.Duration(e.cfg.Gameplay.MessageMs) * time.Millisecond
	e.message = text
	e.messageUntil = now.Add(d)
	if f := e.cb.OnMessage; f != nil {
		n.add(func() { f(text, d) })
	}
}

// report queues the callbacks for the difference between old and the
// current state plus the given events.
func (e *Engine) report(old state.GameStateData, events []system.Event, n *notes) {
	s := e.state
	cb := e.cb

	for _, ev := range events {
		ic := ev.Icon
		switch ev.Kind {
		case system.EventCorrect:
			if f := cb.OnCorrectGuess; f != nil {
				pts := ev.Points
				n.add(func() { f(ic.Name, pts) })
			}
			if f := cb.OnSetResult; f != nil {
				n.add(func() { f(ic.Code, true) })
			}
		case system.EventMissed:
			if f := cb.OnMissed; f != nil {
				n.add(func() { f(ic.Name) })
			}
			if f := cb.OnSetResult; f != nil {
				n.add(func() { f(ic.Code, false) })
			}
		}
	}

	if s.Score != old.Score {
		if f := cb.OnScoreChange; f != nil {
			v := s.Score
			n.add(func() { f(v) })
		}
	}
	if s.ReportedLives() != old.ReportedLives() {
		if f := cb.OnLivesChange; f != nil {
			v := s.ReportedLives()
			n.add(func() { f(v) })
		}
	}
	if len(s.CompletedSets) != len(old.CompletedSets) || s.Total != old.Total {
		if f := cb.OnProgress; f != nil {
			done, total := len(s.CompletedSets), s.Total
			n.add(func() { f(done, total) })
		}
	}
	if s.State != old.State {
		if f := cb.OnStateChange; f != nil {
			v := s.State
			// State changes go first so hosts see the new state before the details
			n.prepend(func() { f(v) })
		}
	}
}

// mutate runs fn against the state under the lock and reports the result.
// It is a no-op after Destroy.
func (e *Engine) mutate(fn func(s state.GameStateData, now time.Time, n *notes) (state.GameStateData, []system.Event)) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	var n notes
	old := e.state
	var events []system.Event
	e.state, events = fn(old, e.clock(), &n)
	e.report(old, events, &n)
	e.mu.Unlock()
	n.fire()
}

// Start begins a fresh session with every configured set. It works from any
// state and is a no-op without sets.
func (e *Engine) Start() {
	e.Begin(Round{Sets: e.sets, Lives: e.cfg.Gameplay.Lives})
}

// Begin starts a session with the given round. A round without sets is ignored.
func (e *Engine) Begin(r Round) {
	if len(r.Sets) == 0 {
		return
	}
	e.mutate(func(s state.GameStateData, now time.Time, n *notes) (state.GameStateData, []system.Event) {
		return e.begin(s, r, now, n), nil
	})
}

// Pause suspends a playing game.
func (e *Engine) Pause() {
	e.mutate(func(s state.GameStateData, _ time.Time, _ *notes) (state.GameStateData, []system.Event) {
		if s.State != state.StatePlaying {
			return s, nil
		}
		return s.WithState(state.StatePaused), nil
	})
}

// Resume continues a paused game.
func (e *Engine) Resume() {
	e.mutate(func(s state.GameStateData, _ time.Time, _ *notes) (state.GameStateData, []system.Event) {
		if s.State != state.StatePaused {
			return s, nil
		}
		return s.WithState(state.StatePlaying), nil
	})
}

// Reset returns to the idle screen, abandoning any session.
func (e *Engine) Reset() {
	e.mutate(func(s state.GameStateData, _ time.Time, _ *notes) (state.GameStateData, []system.Event) {
		e.roundSets = nil
		e.message = ""
		return s.ResetIdle(), nil
	})
}

// CheckAnswer resolves the falling icon whose set name matches text.
// It reports whether an icon matched.
func (e *Engine) CheckAnswer(text string) bool {
	matched := false
	e.mutate(func(s state.GameStateData, now time.Time, _ *notes) (state.GameStateData, []system.Event) {
		next, events, ok := system.CheckAnswer(s, text, e.env(now))
		matched = ok
		return next, events
	})
	return matched
}

// HandleClick is the single-button control: it starts a game from the idle
// and finished screens and toggles pause while playing.
func (e *Engine) HandleClick() {
	switch e.State() {
	case state.StateIdle, state.StateGameOver, state.StateWon:
		e.Start()
	case state.StatePlaying:
		e.Pause()
	case state.StatePaused:
		e.Resume()
	}
}

// SkipCurrentIcon gives up on the oldest falling icon, costing a life.
func (e *Engine) SkipCurrentIcon() {
	e.mutate(func(s state.GameStateData, now time.Time, _ *notes) (state.GameStateData, []system.Event) {
		return system.Skip(s, e.env(now))
	})
}

// UpdateSize changes the field width. Icons already falling keep their position.
func (e *Engine) UpdateSize(width float64) {
	if width <= 0 {
		return
	}
	e.mutate(func(s state.GameStateData, _ time.Time, _ *notes) (state.GameStateData, []system.Event) {
		e.cfg.Field.Width = width
		return s, nil
	})
}

// UpdateStatistics replaces the per-set history used to tint icons.
func (e *Engine) UpdateStatistics(stats map[string]state.SetStat) {
	e.mutate(func(s state.GameStateData, _ time.Time, _ *notes) (state.GameStateData, []system.Event) {
		e.stats = make(map[string]state.SetStat, len(stats))
		for k, v := range stats {
			e.stats[k] = v
		}
		return s, nil
	})
}

// UpdateHintsDisabled turns name hints off or on. Disabling clears the
// hints of icons already falling.
func (e *Engine) UpdateHintsDisabled(disabled bool) {
	e.mutate(func(s state.GameStateData, _ time.Time, _ *notes) (state.GameStateData, []system.Event) {
		if e.cfg.Hints.Disabled == disabled {
			return s, nil
		}
		e.cfg.Hints.Disabled = disabled
		if !disabled {
			return s, nil
		}
		icons := make([]entity.Icon, len(s.Icons))
		for i, ic := range s.Icons {
			icons[i] = ic.WithHint(entity.HintNone)
		}
		return s.WithIcons(icons), nil
	})
}

// HintsDisabled reports whether hints are off.
func (e *Engine) HintsDisabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.Hints.Disabled
}

// Destroy stops the tick loop. Every later call on the engine is a no-op.
func (e *Engine) Destroy() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.destroyed = true
	e.state.Pending = nil
	h := e.handle
	e.mu.Unlock()

	if h != nil {
		h.Stop()
	}
}

// Destroyed reports whether Destroy has been called.
func (e *Engine) Destroyed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.destroyed
}

// State returns the current machine state.
func (e *Engine) State() state.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.State
}

// Snapshot returns the current state value. Its slices and maps are never
// mutated by the engine, so the caller may keep it.
func (e *Engine) Snapshot() state.GameStateData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Message returns the transient message currently shown, if any.
func (e *Engine) Message() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}

// Render draws the current screen onto dst.
func (e *Engine) Render(dst *core.Screen) {
	e.mu.Lock()
	defer e.mu.Unlock()
	screens.Render(dst, e.view())
}

func (e *Engine) view() screens.View {
	return screens.View{
		State:   e.state,
		Config:  e.cfg,
		Stats:   e.stats,
		Message: e.message,
		Sets:    len(e.sets),
	}
}

// notes collects callbacks to run once the lock is released.
type notes struct {
	fns []func()
}

func (n *notes) add(f func()) {
	n.fns = append(n.fns, f)
}

func (n *notes) prepend(f func()) {
	n.fns = append([]func(){f}, n.fns...)
}

func (n *notes) fire() {
	for _, f := range n.fns {
		f()
	}
}
