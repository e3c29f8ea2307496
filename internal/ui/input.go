package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/glyphcast/internal/player"
)

// Action is a held movement control.
type Action int

const (
	ActionTurnLeft Action = iota
	ActionTurnRight
	ActionForward
	ActionBackward
	actionCount
)

// ActionForKey maps arrow keys and WASD to movement actions.
func ActionForKey(ev *tcell.EventKey) (Action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return ActionTurnLeft, true
	case tcell.KeyRight:
		return ActionTurnRight, true
	case tcell.KeyUp:
		return ActionForward, true
	case tcell.KeyDown:
		return ActionBackward, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return ActionTurnLeft, true
		case 'd', 'D':
			return ActionTurnRight, true
		case 'w', 'W':
			return ActionForward, true
		case 's', 'S':
			return ActionBackward, true
		}
	}
	return 0, false
}

// KeyState turns key press events into held inputs. Terminals report
// presses and auto-repeats but never releases, so an action counts as held
// until hold has passed without another press.
type KeyState struct {
	hold time.Duration
	last [actionCount]time.Time
}

// NewKeyState creates a tracker with the given hold window.
func NewKeyState(hold time.Duration) *KeyState {
	return &KeyState{hold: hold}
}

// Press records a press of the action. Pressing one direction releases
// its opposite.
func (k *KeyState) Press(a Action, at time.Time) {
	k.last[a] = at
	switch a {
	case ActionTurnLeft:
		k.last[ActionTurnRight] = time.Time{}
	case ActionTurnRight:
		k.last[ActionTurnLeft] = time.Time{}
	case ActionForward:
		k.last[ActionBackward] = time.Time{}
	case ActionBackward:
		k.last[ActionForward] = time.Time{}
	}
}

// Release drops every held action.
func (k *KeyState) Release() {
	k.last = [actionCount]time.Time{}
}

// Input returns the actions held at now.
func (k *KeyState) Input(now time.Time) player.Input {
	return player.Input{
		TurnLeft:  k.held(ActionTurnLeft, now),
		TurnRight: k.held(ActionTurnRight, now),
		Forward:   k.held(ActionForward, now),
		Backward:  k.held(ActionBackward, now),
	}
}

func (k *KeyState) held(a Action, now time.Time) bool {
	t := k.last[a]
	return !t.IsZero() && now.Sub(t) < k.hold
}
