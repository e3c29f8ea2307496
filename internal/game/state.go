// Package game provides the terminal main loop and state management.
package game

// State represents the current view mode.
type State int

const (
	// StateView is the default first-person view.
	StateView State = iota
	// StateMap overlays the minimap on the view.
	StateMap
	// StatePaused freezes the simulation until unpaused.
	StatePaused
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateView:
		return "view"
	case StateMap:
		return "map"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
