// Package entity defines the game's moving objects as plain values.
// Every transform returns a new value; nothing here mutates its receiver.
package entity

import "github.com/vovakirdan/setfall/internal/sets"

// HintNone is the hint level of an icon that has not fallen far enough for any hint.
const HintNone = -1

// MaxHintLevel is the most revealing hint level.
const MaxHintLevel = 3

// Icon is a falling scoring target representing one set.
//
// An icon is active until it is either destroyed (answered) or failed
// (reached the ground). Once resolved, only its animation timer and radius
// change; its position is frozen.
type Icon struct {
	ID        int
	X, Y      float64
	Code      string
	Name      string
	IconURL   string
	Speed     float64
	HintLevel int

	Destroyed bool
	Failed    bool

	// Set only while resolved
	AnimTimer int
	AnimTotal int
	Radius    float64
}

// NewIcon creates an active icon for set at (x, y).
func NewIcon(id int, set sets.Set, x, y, speed float64) Icon {
	return Icon{
		ID:        id,
		X:         x,
		Y:         y,
		Code:      set.Code,
		Name:      set.Name,
		IconURL:   set.IconURL,
		Speed:     speed,
		HintLevel: HintNone,
	}
}

// Active reports whether the icon is still falling and answerable.
func (i Icon) Active() bool {
	return !i.Destroyed && !i.Failed
}

// Resolved reports whether the icon has been answered or missed.
func (i Icon) Resolved() bool {
	return i.Destroyed || i.Failed
}

// Animating reports whether a resolved icon still has animation time left.
func (i Icon) Animating() bool {
	return i.Resolved() && i.AnimTimer > 0
}

// Expired reports whether a resolved icon's animation has finished and the
// icon can be dropped from the live list.
func (i Icon) Expired() bool {
	return i.Resolved() && i.AnimTimer <= 0
}

// Fall advances an active icon by its speed. Resolved icons are returned unchanged.
func (i Icon) Fall() Icon {
	if !i.Active() {
		return i
	}
	i.Y += i.Speed
	return i
}

// WithHint returns the icon at the given hint level.
func (i Icon) WithHint(level int) Icon {
	i.HintLevel = level
	return i
}

// Destroy resolves an active icon as answered and starts the success animation.
func (i Icon) Destroy(ticks int) Icon {
	if !i.Active() {
		return i
	}
	i.Destroyed = true
	return i.startAnimation(ticks)
}

// Fail resolves an active icon as missed and starts the failure animation.
func (i Icon) Fail(ticks int) Icon {
	if !i.Active() {
		return i
	}
	i.Failed = true
	return i.startAnimation(ticks)
}

func (i Icon) startAnimation(ticks int) Icon {
	i.AnimTimer = ticks
	i.AnimTotal = ticks
	i.Radius = 0
	return i
}

// Animate advances a resolved icon's animation by one tick.
func (i Icon) Animate() Icon {
	if !i.Animating() {
		return i
	}
	i.AnimTimer--
	i.Radius += GrowthRate(i.Kind())
	return i
}

// Kind returns the animation kind for a resolved icon.
func (i Icon) Kind() AnimationKind {
	if i.Failed {
		return AnimationFailure
	}
	return AnimationSuccess
}
