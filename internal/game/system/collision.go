package system

import (
	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/game/entity"
	"github.com/vovakirdan/setfall/internal/game/state"
)

// GroundLine returns the y coordinate of the ground surface.
func GroundLine(cfg config.GameConfig) float64 {
	return cfg.Field.Height - cfg.Field.GroundHeight
}

// LabelTop returns the top edge of an icon's label.
func LabelTop(ic entity.Icon, cfg config.GameConfig) float64 {
	return ic.Y - cfg.Field.TextOffset
}

// GroundReached reports whether an icon's label has touched the ground.
// The check uses the label rather than the sprite, which is slightly more
// forgiving than a bounding-box test.
func GroundReached(ic entity.Icon, cfg config.GameConfig) bool {
	return LabelTop(ic, cfg) >= GroundLine(cfg)+cfg.Field.TextPadding
}

// Collide fails every active icon that reached the ground.
func Collide(s state.GameStateData, env Env) (state.GameStateData, []Event) {
	var events []Event
	for _, ic := range s.Icons {
		if ic.Active() && GroundReached(ic, env.Config) {
			var evs []Event
			s, evs = FailIcon(s, ic.ID, env)
			events = append(events, evs...)
		}
	}
	return s, events
}

// FailIcon resolves the active icon with the given id as missed, costs one
// life and schedules game over when lives run out.
func FailIcon(s state.GameStateData, id int, env Env) (state.GameStateData, []Event) {
	var target entity.Icon
	found := false
	for _, ic := range s.Icons {
		if ic.ID == id && ic.Active() {
			target, found = ic, true
			break
		}
	}
	if !found {
		return s, nil
	}

	failed := target.Fail(env.Config.Gameplay.FailureTicks)
	s = s.ReplaceIcon(failed)
	s.Lives--
	events := []Event{{Kind: EventMissed, Icon: failed}}

	if s.Lives <= 0 {
		var ok bool
		s, ok = s.Schedule(state.StateGameOver, env.graceDue())
		if ok {
			events = append(events, Event{Kind: EventScheduled, Target: state.StateGameOver})
		}
	}
	return s, events
}

// Skip gives up on the oldest active icon, resolving it as a miss.
func Skip(s state.GameStateData, env Env) (state.GameStateData, []Event) {
	if s.State != state.StatePlaying {
		return s, nil
	}
	oldest, ok := s.OldestActive()
	if !ok {
		return s, nil
	}
	return FailIcon(s, oldest.ID, env)
}
