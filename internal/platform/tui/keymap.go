package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/setfall/internal/core"
)

// KeyMapper translates Bubble Tea key messages to host actions.
// Printable keys are never mapped: they belong to the answer box.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key pressed during a game. answerEmpty tells whether
// the answer box is empty, which decides what Enter means.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, answerEmpty bool) core.Action {
	switch msg.String() {
	case "ctrl+c":
		return core.ActionQuit
	case "enter":
		if answerEmpty {
			return core.ActionClick
		}
		return core.ActionSubmit
	case "esc":
		return core.ActionPause
	case "tab":
		return core.ActionSkip
	case "ctrl+h", "f2":
		return core.ActionToggleHints
	case "ctrl+s":
		return core.ActionStats
	case "ctrl+q":
		return core.ActionBack
	case "f12":
		return core.ActionScreenshot
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionStats
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab", "ctrl+s":
		return MenuActionStats
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
