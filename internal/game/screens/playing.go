package screens

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/setfall/internal/core"
	"github.com/vovakirdan/setfall/internal/game/entity"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/game/system"
	"github.com/vovakirdan/setfall/internal/game/util"
)

// Accuracy bounds for the icon highlight.
const (
	GoodAccuracy = 0.70
	PoorAccuracy = 0.50
)

// Playing draws the field, every icon, the ground and the HUD.
func Playing(dst *core.Screen, v View) {
	l := NewLayout(dst, v.Config.Field)

	drawGround(dst, l)
	for _, ic := range v.State.Icons {
		if ic.Resolved() {
			drawResolved(dst, l, ic)
		} else {
			drawIcon(dst, l, v, ic)
		}
	}
	drawHUD(dst, v)

	if v.Message != "" {
		dst.DrawTextCenteredColor(2, v.Message, core.ColorBrightYellow)
	}
}

// Tint returns the highlight color for a set's historical accuracy: green at
// 70% or better, red below 50%, neutral otherwise or with no attempts.
func Tint(stat state.SetStat) core.Color {
	acc := util.Accuracy(stat.Success, stat.Failure)
	switch {
	case acc < 0:
		return core.ColorWhite
	case acc >= GoodAccuracy:
		return core.ColorGreen
	case acc < PoorAccuracy:
		return core.ColorRed
	default:
		return core.ColorWhite
	}
}

func drawGround(dst *core.Screen, l Layout) {
	row := l.GroundRow()
	dst.DrawHLineColor(0, row, l.W, GroundChar, core.ColorGreen)
	for y := row + 1; y < l.H; y++ {
		dst.DrawHLineColor(0, y, l.W, GroundFillChar, core.ColorGray)
	}
}

func drawIcon(dst *core.Screen, l Layout, v View, ic entity.Icon) {
	x, y := l.X(ic.X), l.Y(ic.Y)
	w, h := l.IconSize()
	r := core.NewRect(x, y, w, h)

	// An image that is still loading or failed to load degrades to a
	// placeholder; it is redrawn properly once ready.
	if img, ok := v.State.Images.Get(ic.IconURL); ok {
		dst.DrawRectColor(r, IconChar, img.Color)
	} else {
		dst.DrawRectColor(r, PlaceholderChar, core.ColorGray)
	}

	tint := Tint(v.Stats[ic.Code])
	if w >= 3 && h >= 3 {
		dst.DrawBoxColor(r, tint)
	}
	if w >= len(ic.Code)+2 && h >= 3 {
		dst.DrawTextColor(x+(w-len(ic.Code))/2, y+h/2, ic.Code, tint)
	}

	if v.Config.Hints.Disabled {
		return
	}
	label := system.HintText(ic.Name, ic.Code, ic.HintLevel, v.Config.Hints.AlwaysVisible, ic.ID)
	if label == "" {
		return
	}
	labelRow := l.Y(system.LabelTop(ic, v.Config))
	if labelRow >= y {
		labelRow = y - 1
	}
	labelX := x + w/2 - util.Width(label)/2
	labelX = core.Clamp(labelX, 0, core.Max(0, l.W-util.Width(label)))
	dst.DrawTextColor(labelX, labelRow, label, core.ColorBrightWhite)
}

func drawResolved(dst *core.Screen, l Layout, ic entity.Icon) {
	w, h := l.IconSize()
	cx, cy := core.NewRect(l.X(ic.X), l.Y(ic.Y), w, h).Center()

	c := core.ColorBrightGreen
	if ic.Failed {
		c = core.ColorBrightRed
	}
	glyph := util.FadeRune(util.Opacity(ic.AnimTimer, ic.AnimTotal))
	radius := float64(core.ScaleToCells(ic.Radius, l.field.Width, l.W))
	util.DrawRing(dst, cx, cy, radius, glyph, c)
	if ic.Failed {
		dst.DrawTextColor(cx-len(ic.Code)/2, cy, ic.Code, c)
	}
}

func drawHUD(dst *core.Screen, v View) {
	s := v.State
	lives := v.Config.Gameplay.Lives
	if s.Lives > lives {
		lives = s.Lives
	}
	hearts := strings.Repeat(string(LifeChar), s.ReportedLives()) +
		strings.Repeat(string(LostLifeChar), lives-s.ReportedLives())

	left := fmt.Sprintf(" Score: %d ", s.Score)
	dst.DrawTextColor(0, 0, left, core.ColorBrightWhite)
	dst.DrawTextColor(util.Width(left)+1, 0, hearts, core.ColorRed)

	right := fmt.Sprintf("Sets: %d/%d ", len(s.CompletedSets), s.Total)
	if s.Wave != nil {
		right = fmt.Sprintf("Wave %d  ", s.Wave.Index) + right
	}
	dst.DrawTextColor(dst.Width()-util.Width(right), 0, right, core.ColorCyan)
}
