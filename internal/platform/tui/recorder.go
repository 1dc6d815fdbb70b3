package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/setfall/internal/game/engine"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/game/wave"
	"github.com/vovakirdan/setfall/internal/registry"
	"github.com/vovakirdan/setfall/internal/storage"
)

// recorder persists what a game reports: scores, per-set results, sessions
// and wave checkpoints. Storage is best-effort; failures are logged and play
// goes on. A nil store keeps statistics in memory only.
type recorder struct {
	store  *storage.Store
	logger *log.Logger
	mode   string
	player string

	game    registry.Game
	stats   map[string]state.SetStat
	active  bool
	session string
}

func newRecorder(store *storage.Store, logger *log.Logger, mode, player string) *recorder {
	r := &recorder{
		store:  store,
		logger: logger,
		mode:   mode,
		player: player,
		stats:  map[string]state.SetStat{},
	}
	if store != nil {
		stats, err := store.SetStatistics()
		if err != nil {
			logger.Warn("could not load set statistics", "error", err)
		} else {
			r.stats = stats
		}
	}
	return r
}

// attach binds the game whose tinting statistics the recorder keeps current.
func (r *recorder) attach(g registry.Game) {
	r.game = g
	g.UpdateStatistics(r.stats)
}

func (r *recorder) stateChanged(st state.State) {
	if st != state.StatePlaying || r.active {
		return
	}
	r.active = true
	r.session = ""
	if r.store == nil {
		return
	}
	id, err := r.store.StartSession(r.mode, r.player)
	if err != nil {
		r.logger.Warn("could not start session", "error", err)
		return
	}
	r.session = id
}

func (r *recorder) setResult(code string, success bool) {
	st := r.stats[code]
	if success {
		st.Success++
	} else {
		st.Failure++
	}
	r.stats[code] = st
	if r.game != nil {
		r.game.UpdateStatistics(r.stats)
	}

	if r.store == nil {
		return
	}
	if err := r.store.RecordSetResult(code, success); err != nil {
		r.logger.Warn("could not record set result", "code", code, "error", err)
	}
}

// complete saves the score of a finished session once.
func (r *recorder) complete(res engine.Result) {
	if !r.active {
		return
	}
	r.active = false
	r.logger.Info("game finished", "mode", r.mode, "won", res.Won, "score", res.Score, "wave", res.Wave)
	if r.store == nil {
		return
	}

	if res.Score > 0 {
		if _, err := r.store.SaveScore(r.mode, res.Score); err != nil {
			r.logger.Warn("could not save score", "error", err)
		}
	}
	r.endSession(res.Score, res.Correct, res.Won)

	// A finished run has nothing left to resume
	if info, ok := registry.Lookup(r.mode); ok && info.Resumable {
		if err := r.store.ClearCheckpoints(r.mode); err != nil {
			r.logger.Warn("could not clear checkpoints", "error", err)
		}
	}
}

func (r *recorder) checkpoint(cp wave.Checkpoint) {
	if r.store == nil {
		return
	}
	id, err := r.store.SaveCheckpoint(cp)
	if err != nil {
		r.logger.Warn("could not save checkpoint", "error", err)
		return
	}
	r.logger.Debug("checkpoint saved", "id", id, "wave", cp.CurrentWave)
}

// leave records an abandoned session. Resumable modes checkpoint the wave
// in progress so it can be replayed.
func (r *recorder) leave() {
	if !r.active || r.game == nil {
		return
	}
	r.active = false
	if res, ok := r.game.(registry.Resumable); ok {
		if cp, ok := res.Checkpoint(); ok {
			r.checkpoint(cp)
		}
	}
	if r.store == nil {
		return
	}
	s := r.game.Snapshot()
	r.endSession(s.Score, s.Correct, false)
}

func (r *recorder) endSession(score, correct int, won bool) {
	if r.session == "" {
		return
	}
	if err := r.store.EndSession(r.session, score, correct, won); err != nil {
		r.logger.Warn("could not end session", "error", err)
	}
	r.session = ""
}

// resume restores the latest checkpoint of a resumable game.
func (r *recorder) resume(g registry.Game) error {
	res, ok := g.(registry.Resumable)
	if !ok {
		return fmt.Errorf("mode %q cannot resume", r.mode)
	}
	if r.store == nil {
		return storage.ErrNoCheckpoint
	}
	cp, err := r.store.LatestCheckpoint(r.mode)
	if err != nil {
		return err
	}
	if err := res.Restore(cp); err != nil {
		if errors.Is(err, wave.ErrCheckpointInvalid) {
			// Nothing left to play from it
			if clearErr := r.store.ClearCheckpoints(r.mode); clearErr != nil {
				r.logger.Warn("could not clear checkpoints", "error", clearErr)
			}
		}
		return err
	}
	r.logger.Info("resumed", "mode", r.mode, "wave", cp.CurrentWave+1)
	return nil
}
