package entity

import (
	"testing"

	"github.com/vovakirdan/setfall/internal/sets"
)

func newTestIcon() Icon {
	return NewIcon(1, sets.Set{Name: "Mirage", Code: "MIR", IconURL: "u"}, 100, -48, 2)
}

func TestNewIconIsActive(t *testing.T) {
	ic := newTestIcon()

	if !ic.Active() || ic.Resolved() {
		t.Error("New icon should be active")
	}
	if ic.HintLevel != HintNone {
		t.Errorf("HintLevel = %d, expected %d", ic.HintLevel, HintNone)
	}
	if ic.Code != "MIR" || ic.Name != "Mirage" || ic.IconURL != "u" {
		t.Errorf("Set fields not copied: %+v", ic)
	}
}

func TestIconFall(t *testing.T) {
	ic := newTestIcon()
	next := ic.Fall()

	if next.Y != ic.Y+2 {
		t.Errorf("Fall() y = %v, expected %v", next.Y, ic.Y+2)
	}
	if ic.Y != -48 {
		t.Error("Fall() must not modify the receiver")
	}
}

func TestResolvedIconFreezesPosition(t *testing.T) {
	tests := []struct {
		name    string
		resolve func(Icon) Icon
		growth  float64
	}{
		{"destroyed", func(i Icon) Icon { return i.Destroy(10) }, SuccessGrowth},
		{"failed", func(i Icon) Icon { return i.Fail(10) }, FailureGrowth},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ic := tc.resolve(newTestIcon())

			if ic.Active() || !ic.Resolved() {
				t.Fatal("Icon should be resolved")
			}
			if ic.Destroyed == ic.Failed {
				t.Error("Exactly one resolution flag should be set")
			}

			x, y := ic.X, ic.Y
			for i := 0; i < 4; i++ {
				ic = ic.Fall().Animate()
			}
			if ic.X != x || ic.Y != y {
				t.Errorf("Resolved icon moved from (%v, %v) to (%v, %v)", x, y, ic.X, ic.Y)
			}
			if ic.AnimTimer != 6 {
				t.Errorf("AnimTimer = %d, expected 6", ic.AnimTimer)
			}
			if ic.Radius != 4*tc.growth {
				t.Errorf("Radius = %v, expected %v", ic.Radius, 4*tc.growth)
			}
		})
	}
}

func TestIconResolveOnlyOnce(t *testing.T) {
	ic := newTestIcon().Destroy(10).Fail(99)

	if !ic.Destroyed || ic.Failed {
		t.Error("A resolved icon cannot change its resolution")
	}
	if ic.AnimTimer != 10 {
		t.Errorf("AnimTimer = %d, second resolve should be ignored", ic.AnimTimer)
	}
}

func TestIconExpires(t *testing.T) {
	ic := newTestIcon().Fail(2)
	if ic.Expired() {
		t.Error("Fresh failure should not be expired")
	}
	ic = ic.Animate().Animate()
	if !ic.Expired() || ic.Animating() {
		t.Error("Icon should expire once its timer runs out")
	}
	if r := ic.Animate().Radius; r != ic.Radius {
		t.Error("Expired icon should stop growing")
	}
	if newTestIcon().Expired() {
		t.Error("Active icon is never expired")
	}
}

func TestTitleIconDriftWraps(t *testing.T) {
	ti := TitleIcon{Y: 499, Speed: 2}
	ti = ti.Drift(500, 48)
	if ti.Y != -48 {
		t.Errorf("Y = %v, expected wrap to -48", ti.Y)
	}
	ti = ti.Drift(500, 48)
	if ti.Y != -46 {
		t.Errorf("Y = %v, expected -46", ti.Y)
	}
}

func TestAnimationKind(t *testing.T) {
	if GrowthRate(AnimationFailure)*4 != GrowthRate(AnimationSuccess) {
		t.Error("Failure should grow four times slower than success")
	}
	if newTestIcon().Fail(1).Kind() != AnimationFailure {
		t.Error("Failed icon should use the failure animation")
	}
	if AnimationSuccess.String() != "success" {
		t.Error("String() mismatch")
	}
}
