package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/setfall/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name  string
		msg   tea.KeyMsg
		empty bool
		want  core.Action
	}{
		{"enter on empty answer clicks", tea.KeyMsg{Type: tea.KeyEnter}, true, core.ActionClick},
		{"enter with answer submits", tea.KeyMsg{Type: tea.KeyEnter}, false, core.ActionSubmit},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, true, core.ActionPause},
		{"tab skips", tea.KeyMsg{Type: tea.KeyTab}, true, core.ActionSkip},
		{"f2 toggles hints", tea.KeyMsg{Type: tea.KeyF2}, true, core.ActionToggleHints},
		{"ctrl+s opens stats", tea.KeyMsg{Type: tea.KeyCtrlS}, true, core.ActionStats},
		{"ctrl+q goes back", tea.KeyMsg{Type: tea.KeyCtrlQ}, true, core.ActionBack},
		{"f12 takes a screenshot", tea.KeyMsg{Type: tea.KeyF12}, true, core.ActionScreenshot},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, false, core.ActionQuit},
		{"letters belong to the answer", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, true, core.ActionNone},
		{"space belongs to the answer", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, false, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg, tt.empty); got != tt.want {
				t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionStats},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
				t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}
