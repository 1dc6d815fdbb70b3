package screens

import (
	"fmt"

	"github.com/vovakirdan/setfall/internal/core"
	"github.com/vovakirdan/setfall/internal/game/util"
)

// Idle draws the title screen over drifting set icons.
func Idle(dst *core.Screen, v View) {
	l := NewLayout(dst, v.Config.Field)
	for _, t := range v.State.TitleIcons {
		c := core.ColorGray
		if img, ok := v.State.Images.Get(t.URL); ok {
			c = img.Color
		}
		dst.SetColor(l.X(t.X), l.Y(t.Y), TitleChar, c)
	}

	if v.Sets == 0 {
		util.DrawMessageBox(dst, "SETFALL", core.ColorBrightCyan,
			"No sets loaded")
		return
	}
	util.DrawMessageBox(dst, "SETFALL", core.ColorBrightCyan,
		"Type each set's name before it lands",
		fmt.Sprintf("%d sets", v.Sets),
		"Click or press Enter to start")
}
