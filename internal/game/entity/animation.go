package entity

// AnimationKind distinguishes the two resolution animations.
type AnimationKind int

const (
	AnimationSuccess AnimationKind = iota
	AnimationFailure
)

// Radius growth per tick. Failure rings expand four times slower so a miss
// lingers on screen.
const (
	SuccessGrowth = 1.0
	FailureGrowth = 0.25
)

// GrowthRate returns the per-tick radius increment for an animation kind.
func GrowthRate(k AnimationKind) float64 {
	if k == AnimationFailure {
		return FailureGrowth
	}
	return SuccessGrowth
}

// String returns a human-readable name for the kind.
func (k AnimationKind) String() string {
	switch k {
	case AnimationSuccess:
		return "success"
	case AnimationFailure:
		return "failure"
	default:
		return "unknown"
	}
}
