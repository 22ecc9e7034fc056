package core

// Action represents a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Move the cursor up
	ActionDown           // Move the cursor down
	ActionLeft           // Move the cursor left
	ActionRight          // Move the cursor right
	ActionSelect         // Pick the piece under the cursor, or swap with the picked one
	ActionCancel         // Drop the current selection
	ActionHint           // Show an available swap
	ActionRestart        // Start a new board
	ActionHelp           // Toggle the full help view
	ActionBack           // Back to the variant menu
	ActionQuit           // Exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionCancel:
		return "Cancel"
	case ActionHint:
		return "Hint"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the cursor movement for a direction action in screen space,
// where y grows downwards. Non-direction actions return (0, 0).
func (a Action) Delta() (dx, dy int) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	}
	return 0, 0
}
