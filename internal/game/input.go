package game

import "github.com/gdamore/tcell/v2"

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionForward
	ActionBack
	ActionTurnLeft
	ActionTurnRight
	ActionStrafeLeft
	ActionStrafeRight
	ActionRaise
	ActionLower
	ActionToggleMap
	ActionToggleClip
	ActionNextMap
)

// keyAction maps a key press to an action.
func keyAction(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		return ActionForward
	case tcell.KeyDown:
		return ActionBack
	case tcell.KeyLeft:
		return ActionTurnLeft
	case tcell.KeyRight:
		return ActionTurnRight
	case tcell.KeyPgUp:
		return ActionRaise
	case tcell.KeyPgDn:
		return ActionLower
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return ActionQuit
		case 'w', 'W':
			return ActionForward
		case 's', 'S':
			return ActionBack
		case 'a', 'A':
			return ActionStrafeLeft
		case 'd', 'D':
			return ActionStrafeRight
		case 'm', 'M':
			return ActionToggleMap
		case 'c', 'C':
			return ActionToggleClip
		case 'n', 'N':
			return ActionNextMap
		}
	}
	return ActionNone
}
