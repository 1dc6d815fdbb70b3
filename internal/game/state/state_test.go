package state

import (
	"testing"
	"time"

	"github.com/vovakirdan/setfall/internal/game/entity"
	"github.com/vovakirdan/setfall/internal/sets"
)

func icon(id int) entity.Icon {
	return entity.NewIcon(id, sets.Set{Name: "N", Code: "C"}, 0, 0, 1)
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateIdle:     "idle",
		StatePlaying:  "playing",
		StatePaused:   "paused",
		StateGameOver: "gameover",
		StateWon:      "won",
		State(99):     "unknown",
	}
	for st, want := range tests {
		if st.String() != want {
			t.Errorf("%d.String() = %q, expected %q", st, st.String(), want)
		}
	}
	if !StateWon.Finished() || !StateGameOver.Finished() || StatePlaying.Finished() {
		t.Error("Finished() mismatch")
	}
}

func TestBeginSessionResets(t *testing.T) {
	s := New(nil)
	s.TitleIcons = []entity.TitleIcon{{Code: "T"}}
	s = s.AddIcon(icon(5)).WithCompleted("X")
	s.LastSpawn = time.Unix(100, 0)
	s, _ = s.Schedule(StateGameOver, time.Unix(200, 0))

	next := s.BeginSession(Session{Total: 3, Lives: 3})

	if next.State != StatePlaying || next.Lives != 3 || next.Score != 0 || next.Total != 3 {
		t.Errorf("BeginSession = %+v", next)
	}
	if len(next.Icons) != 0 || len(next.CompletedSets) != 0 {
		t.Error("Icons and completed sets should be cleared")
	}
	if !next.LastSpawn.IsZero() || next.Pending != nil || next.SpawnBlocked {
		t.Error("Spawn timer and pending transition should be cleared")
	}
	if len(next.TitleIcons) != 1 {
		t.Error("Title icons should carry over")
	}
	if next.NextID != 6 {
		t.Errorf("NextID = %d, expected id counter to keep increasing", next.NextID)
	}
}

func TestHelpersDoNotMutateShared(t *testing.T) {
	s := New(nil).AddIcon(icon(1)).WithCompleted("A")
	snapshot := s

	s2 := s.WithCompleted("B")
	s3 := s.ReplaceIcon(s.Icons[0].Destroy(5))
	s4 := s.AddIcon(icon(2))

	if len(snapshot.CompletedSets) != 1 || snapshot.CompletedSets["B"] {
		t.Error("WithCompleted mutated the original map")
	}
	if !snapshot.Icons[0].Active() {
		t.Error("ReplaceIcon mutated the original slice")
	}
	if len(snapshot.Icons) != 1 {
		t.Error("AddIcon mutated the original slice")
	}
	if len(s2.CompletedSets) != 2 || s3.Icons[0].Active() || len(s4.Icons) != 2 {
		t.Error("Derived states should carry the change")
	}
}

func TestActiveIcons(t *testing.T) {
	s := New(nil).AddIcon(icon(3)).AddIcon(icon(1)).AddIcon(icon(2))
	s = s.ReplaceIcon(s.Icons[1].Fail(5)) // id 1 resolved

	if s.ActiveCount() != 2 || len(s.ActiveIcons()) != 2 {
		t.Errorf("ActiveCount = %d, expected 2", s.ActiveCount())
	}
	oldest, ok := s.OldestActive()
	if !ok || oldest.ID != 2 {
		t.Errorf("OldestActive = %d, expected 2", oldest.ID)
	}
	if _, ok := New(nil).OldestActive(); ok {
		t.Error("Empty state has no oldest icon")
	}
}

func TestScheduleOnlyOnce(t *testing.T) {
	s := New(nil)
	due := time.Unix(10, 0)

	s, ok := s.Schedule(StateWon, due)
	if !ok || s.Pending == nil || !s.SpawnBlocked {
		t.Fatal("First schedule should succeed and block spawning")
	}
	s, ok = s.Schedule(StateGameOver, due.Add(time.Second))
	if ok || s.Pending.Target != StateWon {
		t.Error("Second schedule should be ignored")
	}
}

func TestApplyDue(t *testing.T) {
	s := New(nil).WithState(StatePlaying)
	due := time.Unix(10, 0)
	s, _ = s.Schedule(StateWon, due)

	s, applied := s.ApplyDue(due.Add(-time.Millisecond))
	if applied || s.State != StatePlaying {
		t.Error("Transition must not apply before its due time")
	}

	s, applied = s.ApplyDue(due)
	if !applied || s.State != StateWon || s.Pending != nil {
		t.Errorf("Transition should apply at due time, got %v", s.State)
	}
}

func TestReportedLives(t *testing.T) {
	s := New(nil)
	s.Lives = -2
	if s.ReportedLives() != 0 {
		t.Error("Negative lives should be reported as 0")
	}
}

func TestWaveState(t *testing.T) {
	var nilWave *WaveState
	if nilWave.Clone() != nil || nilWave.Shown("A") || nilWave.WithCompletion() != nil {
		t.Error("Nil wave helpers should be safe")
	}

	w := &WaveState{Index: 1, SetCodes: []string{"A"}, History: []string{"A"}}
	c := w.WithCompletion()
	c.History[0] = "Z"

	if w.Completed != 0 || c.Completed != 1 {
		t.Error("WithCompletion should copy")
	}
	if w.History[0] != "A" {
		t.Error("Clone should deep-copy history")
	}
	if !w.Shown("A") || w.Shown("B") {
		t.Error("Shown mismatch")
	}
}
