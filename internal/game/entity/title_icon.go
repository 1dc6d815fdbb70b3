package entity

// TitleIcon is a decorative icon drifting behind the idle screen.
type TitleIcon struct {
	X, Y  float64
	URL   string
	Code  string
	Speed float64
}

// Drift moves the icon down and wraps it back above the top edge once it
// leaves the bottom of a field of the given height.
func (t TitleIcon) Drift(height, iconSize float64) TitleIcon {
	t.Y += t.Speed
	if t.Y > height {
		t.Y = -iconSize
	}
	return t
}
