package core

import "github.com/vovakirdan/tui-snake/internal/snake"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game screens to work with intents rather than raw keys.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow
	ActionDown              // S, Down arrow
	ActionLeft              // A, Left arrow
	ActionRight             // D, Right arrow
	ActionConfirm           // Enter - start a game, confirm a menu item
	ActionPause             // Space, P
	ActionToggleMode        // M - switch walls/passthrough while not playing
	ActionRestart           // R - back to idle with a fresh board
	ActionBack              // Escape - back to menu
	ActionQuit              // Q, Ctrl+C
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
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionToggleMode:
		return "ToggleMode"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction maps a movement action to a snake direction.
func (a Action) Direction() (snake.Direction, bool) {
	switch a {
	case ActionUp:
		return snake.DirUp, true
	case ActionDown:
		return snake.DirDown, true
	case ActionLeft:
		return snake.DirLeft, true
	case ActionRight:
		return snake.DirRight, true
	default:
		return 0, false
	}
}
