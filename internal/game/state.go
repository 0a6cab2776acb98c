// Package game runs the simulation: the unit roster, input modes and the tick loop.
package game

// State is the input mode the simulation is in.
type State int

const (
	// StateLoading is the mode before the world is populated. Input is ignored.
	StateLoading State = iota
	// StateWorld is free exploration: clicks select units.
	StateWorld
	// StateUnitSelected has a unit selected: right clicks send it somewhere.
	StateUnitSelected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateWorld:
		return "world"
	case StateUnitSelected:
		return "unit selected"
	default:
		return "unknown"
	}
}
