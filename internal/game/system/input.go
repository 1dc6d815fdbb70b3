package system

import (
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/sets"
)

// CheckAnswer resolves the active icon whose set name equals text after
// trimming and lowercasing. It reports false, leaving s unchanged, when the
// game is not playing, the text is empty or nothing matches.
func CheckAnswer(s state.GameStateData, text string, env Env) (state.GameStateData, []Event, bool) {
	if s.State != state.StatePlaying {
		return s, nil, false
	}
	answer := sets.Normalize(text)
	if answer == "" {
		return s, nil, false
	}

	for _, ic := range s.Icons {
		if !ic.Active() || sets.Normalize(ic.Name) != answer {
			continue
		}

		points := Points(ic, env.Config)
		destroyed := ic.Destroy(env.Config.Gameplay.SuccessTicks)

		s = s.ReplaceIcon(destroyed)
		s.Score += points
		s.Correct++
		s = s.WithCompleted(ic.Code)
		s.Wave = s.Wave.WithCompletion()

		events := []Event{{Kind: EventCorrect, Icon: destroyed, Points: points}}
		var won []Event
		s, won = CheckWin(s, env)
		return s, append(events, won...), true
	}
	return s, nil, false
}

// CheckWin schedules the win transition once every set of the session is completed.
func CheckWin(s state.GameStateData, env Env) (state.GameStateData, []Event) {
	if s.Total <= 0 || len(s.CompletedSets) < s.Total {
		return s, nil
	}
	s, ok := s.Schedule(state.StateWon, env.graceDue())
	if !ok {
		return s, nil
	}
	return s, []Event{{Kind: EventScheduled, Target: state.StateWon}}
}
