package system

import (
	"math"

	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/game/entity"
	"github.com/vovakirdan/setfall/internal/game/util"
)

// Point bounds for a correct answer.
const (
	MinPoints   = 100
	BonusPoints = 200
)

// FallFraction returns an icon's progress toward the ground in [0, 1].
func FallFraction(ic entity.Icon, cfg config.GameConfig) float64 {
	f := cfg.Field
	return util.FallFraction(ic.Y, f.IconSize, f.Height, f.GroundHeight)
}

// Points returns the award for answering ic now: 300 at spawn, falling
// linearly to 100 at the ground.
func Points(ic entity.Icon, cfg config.GameConfig) int {
	return MinPoints + int(math.Floor((1-FallFraction(ic, cfg))*BonusPoints))
}
