package pathfind

// State is the lifecycle of a Pathfinder.
type State int

const (
	// StateActive means Update still has work to do.
	StateActive State = iota
	// StateGoalReached means the goal was popped and the callback ran.
	StateGoalReached
	// StateExhausted means the open set emptied without reaching the goal.
	StateExhausted
	// StateStopped means Stop was called.
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateGoalReached:
		return "goal_reached"
	case StateExhausted:
		return "exhausted"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
