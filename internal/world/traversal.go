package world

import "github.com/samdwyer/overland/internal/grid"

// IsAllowed reports whether a unit may step from `from` onto `to`. A nil
// from only checks that `to` can be entered at all.
//
// Water, deep water, lava and rock are never enterable. Natural terrain
// boundaries are free to cross. Moving between two different structural
// types is blocked unless door crossing is enabled and a door joins them.
func (w *World) IsAllowed(from *grid.Point, to grid.Point) bool {
	target := w.GetTile(to.X, to.Y)
	if from == nil {
		return w.allowed(nil, target)
	}
	return w.allowed(w.GetTile(from.X, from.Y), target)
}

// CanEnter is IsAllowed without an origin.
func (w *World) CanEnter(p grid.Point) bool {
	return w.IsAllowed(nil, p)
}

func (w *World) allowed(current, target *Tile) bool {
	if target.Type.IsImpassable() {
		return false
	}
	if current == nil || current.Type == target.Type {
		return true
	}
	if current.Type.IsStructural() || target.Type.IsStructural() {
		return w.doorCrossing && w.hasDoor(current.Point(), target.Point())
	}
	return true
}

func (w *World) hasDoor(a, b grid.Point) bool {
	br, ok := w.BridgeBetween(a, b)
	return ok && br.Kind == BridgeDoor
}
