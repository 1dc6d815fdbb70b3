package core

// Action represents a semantic host action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionClick              // Enter on an empty answer, or a mouse click on the field
	ActionSubmit             // Enter with a non-empty answer
	ActionPause              // Esc - pause/resume
	ActionSkip               // Tab - give up on the oldest falling icon
	ActionToggleHints        // Ctrl+H
	ActionStats              // Ctrl+S - open the statistics browser
	ActionBack               // Ctrl+Q - leave the game for the menu
	ActionScreenshot         // F12 - save the field as text
	ActionQuit               // Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionClick:
		return "Click"
	case ActionSubmit:
		return "Submit"
	case ActionPause:
		return "Pause"
	case ActionSkip:
		return "Skip"
	case ActionToggleHints:
		return "ToggleHints"
	case ActionStats:
		return "Stats"
	case ActionBack:
		return "Back"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
