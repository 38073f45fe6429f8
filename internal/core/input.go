package core

import "github.com/vovakirdan/beyond2048/internal/board"

// Action represents a semantic player intent, abstracted from physical key
// presses so shells can share bindings.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionUndo           // U, Backspace
	ActionNewGame        // N, R
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionHelp           // ?
	ActionQuit           // Q, Ctrl+C - exit session
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
	case ActionUndo:
		return "Undo"
	case ActionNewGame:
		return "NewGame"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction maps a movement action to the board direction it slides.
func (a Action) Direction() (board.Direction, bool) {
	switch a {
	case ActionUp:
		return board.DirUp, true
	case ActionDown:
		return board.DirDown, true
	case ActionLeft:
		return board.DirLeft, true
	case ActionRight:
		return board.DirRight, true
	}
	return 0, false
}
