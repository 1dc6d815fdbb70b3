package util

import (
	"math"

	"github.com/vovakirdan/setfall/internal/core"
)

// DrawMessageBox draws a bordered box in the center of the screen holding a
// title and any number of subtitle lines.
func DrawMessageBox(dst *core.Screen, title string, color core.Color, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := Width(title)
	for _, l := range lines {
		boxW = core.Max(boxW, Width(l))
	}
	boxW += 4
	boxH := 3 + len(lines)
	if len(lines) > 0 {
		boxH++
	}
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ')
	dst.DrawBoxColor(r, color)

	dst.DrawTextColor(boxX+(boxW-Width(title))/2, boxY+1, title, color)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-Width(l))/2, boxY+3+i, l)
	}
}

// DrawRing draws an ellipse outline centered on (cx, cy). Terminal cells are
// roughly twice as tall as wide, so the vertical radius is halved.
func DrawRing(dst *core.Screen, cx, cy int, radius float64, r rune, c core.Color) {
	if radius < 0.5 {
		dst.SetColor(cx, cy, r, c)
		return
	}
	steps := int(math.Max(8, radius*8))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(math.Cos(a)*radius))
		y := cy + int(math.Round(math.Sin(a)*radius/2))
		dst.SetColor(x, y, r, c)
	}
}

// FadeRune picks a glyph that gets lighter as opacity drops.
func FadeRune(opacity float64) rune {
	switch {
	case opacity > 0.75:
		return '█'
	case opacity > 0.5:
		return '▓'
	case opacity > 0.25:
		return '▒'
	default:
		return '░'
	}
}
