// Package screens draws the game onto a core.Screen, one render function per
// machine state. Rendering only reads state; it never changes it.
package screens

import (
	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/core"
	"github.com/vovakirdan/setfall/internal/game/state"
)

// Display glyphs.
const (
	IconChar        = '█'
	PlaceholderChar = '░'
	GroundChar      = '▀'
	GroundFillChar  = '·'
	TitleChar       = '▪'
	LifeChar        = '♥'
	LostLifeChar    = '♡'
)

// View is everything a frame needs.
type View struct {
	State   state.GameStateData
	Config  config.GameConfig
	Stats   map[string]state.SetStat // Historical results per set code, for tinting
	Message string                   // Transient message, empty when none
	Sets    int                      // Configured set count
}

// Render clears dst and draws the screen for the view's current state.
func Render(dst *core.Screen, v View) {
	dst.Clear()
	if dst.Width() <= 0 || dst.Height() <= 0 {
		return
	}

	switch v.State.State {
	case state.StateIdle:
		Idle(dst, v)
	case state.StatePlaying:
		Playing(dst, v)
	case state.StatePaused:
		Paused(dst, v)
	case state.StateGameOver:
		GameOver(dst, v)
	case state.StateWon:
		Won(dst, v)
	}
}

// Layout maps world coordinates onto screen cells.
type Layout struct {
	W, H  int
	field config.FieldConfig
}

// NewLayout creates a layout for a screen of the given size.
func NewLayout(dst *core.Screen, field config.FieldConfig) Layout {
	return Layout{W: dst.Width(), H: dst.Height(), field: field}
}

// X maps a world x coordinate to a column.
func (l Layout) X(x float64) int {
	return core.ScaleToCells(x, l.field.Width, l.W)
}

// Y maps a world y coordinate to a row. Negative world coordinates map to
// negative rows so icons slide in from above.
func (l Layout) Y(y float64) int {
	if y < 0 {
		return -core.ScaleToCells(-y, l.field.Height, l.H) - 1
	}
	return core.ScaleToCells(y, l.field.Height, l.H)
}

// IconSize returns the icon footprint in cells, at least one in each direction.
func (l Layout) IconSize() (w, h int) {
	w = core.Max(1, core.ScaleToCells(l.field.IconSize, l.field.Width, l.W))
	h = core.Max(1, core.ScaleToCells(l.field.IconSize, l.field.Height, l.H))
	return w, h
}

// GroundRow returns the first row of the ground.
func (l Layout) GroundRow() int {
	return l.Y(l.field.Height - l.field.GroundHeight)
}
