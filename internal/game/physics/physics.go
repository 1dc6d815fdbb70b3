// Package physics advances the simulation by one tick.
package physics

import (
	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/game/entity"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/game/system"
)

// Step advances a playing state by one tick: resolved icons animate, active
// icons fall and refresh their hint level, grounded icons fail, finished
// animations are purged and a new icon spawns if the gate allows.
// States other than playing are returned unchanged.
func Step(s state.GameStateData, env system.Env) (state.GameStateData, []system.Event) {
	if s.State != state.StatePlaying {
		return s, nil
	}
	s.Ticks++

	icons := make([]entity.Icon, len(s.Icons))
	for i, ic := range s.Icons {
		icons[i] = advance(ic, env.Config)
	}
	s = s.WithIcons(icons)

	s, events := system.Collide(s, env)
	s = Purge(s)

	var spawned []system.Event
	s, spawned = system.Spawn(s, env)
	return s, append(events, spawned...)
}

func advance(ic entity.Icon, cfg config.GameConfig) entity.Icon {
	if ic.Animating() {
		return ic.Animate()
	}
	if !ic.Active() {
		return ic
	}
	ic = ic.Fall()
	if cfg.Hints.Disabled {
		return ic.WithHint(entity.HintNone)
	}
	level := system.HintLevel(system.FallFraction(ic, cfg), cfg.Hints.Thresholds)
	// Hints never regress while an icon falls
	if level < ic.HintLevel {
		level = ic.HintLevel
	}
	return ic.WithHint(level)
}

// Purge drops resolved icons whose animation has finished.
func Purge(s state.GameStateData) state.GameStateData {
	var live []entity.Icon
	for _, ic := range s.Icons {
		if !ic.Expired() {
			live = append(live, ic)
		}
	}
	return s.WithIcons(live)
}

// Drift moves the idle screen's title icons. It runs in every state so the
// background keeps moving behind the overlays.
func Drift(s state.GameStateData, cfg config.GameConfig) state.GameStateData {
	if len(s.TitleIcons) == 0 {
		return s
	}
	titles := make([]entity.TitleIcon, len(s.TitleIcons))
	for i, t := range s.TitleIcons {
		titles[i] = t.Drift(cfg.Field.Height, cfg.Field.IconSize)
	}
	s.TitleIcons = titles
	return s
}
