package system

import (
	"math"
	"time"

	"github.com/vovakirdan/setfall/internal/game/entity"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/game/util"
	"github.com/vovakirdan/setfall/internal/sets"
)

// CanSpawn reports whether the spawn gate is open.
func CanSpawn(s state.GameStateData, env Env) bool {
	if s.State != state.StatePlaying || s.Lives <= 0 || s.SpawnBlocked {
		return false
	}
	if len(env.Sets) == 0 {
		return false
	}
	if s.ActiveCount() >= env.Config.Spawn.MaxActive {
		return false
	}
	if s.LastSpawn.IsZero() {
		return true
	}
	delay := time.Duration(env.Config.Spawn.DelayMs) * time.Millisecond
	return env.Now.Sub(s.LastSpawn) > delay
}

// Candidates returns the sets that are neither completed in this session nor
// already falling, so at most one active icon carries any name. When every
// set is completed the completed list is cleared first, so the pool is never
// empty while at least one set exists and is not on screen. An empty pool
// means every eligible set is falling; the caller waits for one to resolve.
func Candidates(s state.GameStateData, env Env) ([]sets.Set, state.GameStateData) {
	if len(remaining(s, env.Sets, nil)) == 0 && len(env.Sets) > 0 {
		s = s.ClearCompleted()
	}
	return remaining(s, env.Sets, falling(s)), s
}

func remaining(s state.GameStateData, all []sets.Set, skip map[string]bool) []sets.Set {
	var pool []sets.Set
	for _, set := range all {
		if !s.CompletedSets[set.Code] && !skip[set.Code] {
			pool = append(pool, set)
		}
	}
	return pool
}

func falling(s state.GameStateData) map[string]bool {
	codes := map[string]bool{}
	for _, ic := range s.ActiveIcons() {
		codes[ic.Code] = true
	}
	return codes
}

// Padding returns the horizontal margin kept free on both sides of the field.
func Padding(env Env) float64 {
	sp := env.Config.Spawn
	return math.Min(sp.PaddingMax, sp.PaddingRatio*env.Config.Field.Width)
}

// SpawnX samples a horizontal position, retrying to keep clear of active
// icons in the top band. After the configured attempts the last sample is
// used even if it overlaps.
func SpawnX(s state.GameStateData, env Env) float64 {
	f := env.Config.Field
	pad := Padding(env)
	minX := pad
	maxX := f.Width - f.IconSize - pad
	clearance := 2 * f.IconSize
	band := f.TopBand * f.Height

	var x float64
	for attempt := 0; attempt < env.Config.Spawn.MaxAttempts; attempt++ {
		x = util.RandomRange(env.Rand, minX, maxX)
		if !crowded(s, x, clearance, band) {
			return x
		}
	}
	return x
}

func crowded(s state.GameStateData, x, clearance, band float64) bool {
	for _, ic := range s.Icons {
		if !ic.Active() || ic.Y >= band {
			continue
		}
		if math.Abs(ic.X-x) < clearance {
			return true
		}
	}
	return false
}

// Spawn adds at most one icon if the gate is open.
func Spawn(s state.GameStateData, env Env) (state.GameStateData, []Event) {
	if !CanSpawn(s, env) {
		return s, nil
	}

	pool, s := Candidates(s, env)
	idx := util.PickIndex(env.Rand, len(pool))
	if idx < 0 {
		return s, nil
	}
	set := pool[idx]

	speed := env.Speed
	if speed <= 0 {
		speed = env.Config.Physics.BaseSpeed
	}
	speed *= 1 + env.Rand.Float64()*env.Config.Physics.SpeedJitter

	ic := entity.NewIcon(s.NextID, set, SpawnX(s, env), -env.Config.Field.IconSize, speed)
	s = s.AddIcon(ic)
	s.LastSpawn = env.Now

	if env.Images != nil {
		env.Images.Request(set.IconURL)
	}

	return s, []Event{{Kind: EventSpawned, Icon: ic}}
}
