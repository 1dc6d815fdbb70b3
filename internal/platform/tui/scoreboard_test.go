package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/setfall/internal/game/modes"
)

func updateScoreboard(m ScoreboardModel, msgs ...tea.Msg) ScoreboardModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ScoreboardModel)
	}
	return m
}

func TestScoreboardPages(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{300, 900} {
		if _, err := store.SaveScore(modes.Classic, score); err != nil {
			t.Fatalf("SaveScore failed: %v", err)
		}
	}
	for _, ok := range []bool{true, false, false, false} {
		if err := store.RecordSetResult("AAA", ok); err != nil {
			t.Fatalf("RecordSetResult failed: %v", err)
		}
	}
	id, err := store.StartSession(modes.Waves, "alice")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if err := store.EndSession(id, 1200, 4, true); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}

	m := NewScoreboardModel(testHost(store))
	if len(m.pages) != 4 {
		t.Fatalf("pages = %+v, want two modes plus sets and recent", m.pages)
	}

	if len(m.rows) != 2 || m.rows[0][1] != "900" {
		t.Errorf("classic rows = %v, want 900 first", m.rows)
	}

	m = updateScoreboard(m, keyOf(tea.KeyTab))
	if m.pages[m.cursor].mode != modes.Waves || len(m.rows) != 0 {
		t.Errorf("page %+v rows %v, want empty waves scores", m.pages[m.cursor], m.rows)
	}

	m = updateScoreboard(m, keyOf(tea.KeyTab))
	want := []string{"AAA", "Alpha", "1", "3", "25%"}
	if len(m.rows) != 1 {
		t.Fatalf("set rows = %v, want one", m.rows)
	}
	for i, cell := range want {
		if m.rows[0][i] != cell {
			t.Errorf("set row[%d] = %q, want %q", i, m.rows[0][i], cell)
		}
	}

	m = updateScoreboard(m, keyOf(tea.KeyTab))
	if len(m.rows) != 1 || m.rows[0][2] != "alice" || m.rows[0][4] != "won" {
		t.Errorf("recent rows = %v", m.rows)
	}

	// Wraps back to the first page
	m = updateScoreboard(m, keyOf(tea.KeyTab))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after wrapping, want 0", m.cursor)
	}
	m = updateScoreboard(m, keyOf(tea.KeyShiftTab))
	if m.cursor != len(m.pages)-1 {
		t.Errorf("cursor = %d after shift+tab, want last page", m.cursor)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(testHost(nil))
	if len(m.rows) != 0 {
		t.Errorf("rows = %v without a store", m.rows)
	}
	if m.View() == "" {
		t.Error("View is empty")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := updateScoreboard(NewScoreboardModel(testHost(nil)), keyOf(tea.KeyEsc))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back")
	}

	m = updateScoreboard(NewScoreboardModel(testHost(nil)), typed("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestScoreboardNarrowLayout(t *testing.T) {
	h := testHost(nil)
	h.Runtime.ScreenW = 60
	m := NewScoreboardModel(h)
	if m.showSidebar {
		t.Error("sidebar shown on a narrow screen")
	}

	m = updateScoreboard(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !m.showSidebar {
		t.Error("sidebar hidden after widening")
	}
}
