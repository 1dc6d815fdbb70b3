package screens

import (
	"fmt"

	"github.com/vovakirdan/setfall/internal/core"
	"github.com/vovakirdan/setfall/internal/game/util"
)

// Paused draws the frozen field under a pause banner.
func Paused(dst *core.Screen, v View) {
	Playing(dst, v)
	util.DrawMessageBox(dst, "PAUSED", core.ColorYellow,
		"Click or press Esc to resume")
}

// GameOver draws the final field and the result.
func GameOver(dst *core.Screen, v View) {
	Playing(dst, v)
	util.DrawMessageBox(dst, "GAME OVER", core.ColorBrightRed, summary(v)...)
}

// Won draws the victory banner.
func Won(dst *core.Screen, v View) {
	Playing(dst, v)
	util.DrawMessageBox(dst, "ALL SETS NAMED", core.ColorBrightGreen, summary(v)...)
}

func summary(v View) []string {
	s := v.State
	lines := []string{
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("Named %d of %d sets", len(s.CompletedSets), s.Total),
	}
	if s.Wave != nil {
		lines = append(lines, fmt.Sprintf("Reached wave %d", s.Wave.Index))
	}
	return append(lines, "Click or press Enter to play again")
}
