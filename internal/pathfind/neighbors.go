package pathfind

import (
	"math"

	"github.com/samdwyer/overland/internal/grid"
)

type step struct {
	point grid.Point
	cost  float64
}

func straight(x, y int) step { return step{point: grid.Pt(x, y), cost: 1} }
func diag(x, y int) step     { return step{point: grid.Pt(x, y), cost: math.Sqrt2} }

// neighbors lists the moves worth trying from p, given the node it was
// reached from. Without a parent, or without diagonal movement, all four
// orthogonal moves are returned, plus each diagonal whose two flanking
// orthogonals are not both blocked.
func (p *Pathfinder) neighbors(at grid.Point, prev *grid.Point) []step {
	allowed := func(x, y int) bool {
		return p.oracle.IsAllowed(prev, grid.Pt(x, y))
	}
	x, y := at.X, at.Y

	if prev == nil || !p.diagonal {
		steps := []step{
			straight(x, y-1),
			straight(x+1, y),
			straight(x-1, y),
			straight(x, y+1),
		}
		if !p.diagonal {
			return steps
		}

		// Don't slip through diagonal cracks.
		up := allowed(x, y-1)
		right := allowed(x+1, y)
		down := allowed(x, y+1)
		left := allowed(x-1, y)
		if up || right {
			steps = append(steps, diag(x+1, y-1))
		}
		if right || down {
			steps = append(steps, diag(x+1, y+1))
		}
		if down || left {
			steps = append(steps, diag(x-1, y+1))
		}
		if left || up {
			steps = append(steps, diag(x-1, y-1))
		}
		return steps
	}

	// Next tile in the direction of travel.
	ox := x - (prev.X - x)
	oy := y - (prev.Y - y)

	switch {
	case prev.X == x:
		steps := []step{straight(x, oy)}
		if allowed(x, oy) {
			if !allowed(x-1, y) {
				steps = append(steps, diag(x-1, oy))
			}
			if !allowed(x+1, y) {
				steps = append(steps, diag(x+1, oy))
			}
		}
		return steps

	case prev.Y == y:
		steps := []step{straight(ox, y)}
		if allowed(ox, y) {
			if !allowed(x, y-1) {
				steps = append(steps, diag(ox, y-1))
			}
			if !allowed(x, y+1) {
				steps = append(steps, diag(ox, y+1))
			}
		}
		return steps

	default:
		steps := []step{
			straight(x, oy),
			straight(ox, y),
		}
		aheadY := allowed(x, oy)
		aheadX := allowed(ox, y)
		if aheadY || aheadX {
			steps = append(steps, diag(ox, oy))
		}
		// Hug corners the parent could not cut.
		if !allowed(prev.X, y) && aheadY {
			steps = append(steps, diag(prev.X, oy))
		}
		if !allowed(x, prev.Y) && aheadX {
			steps = append(steps, diag(ox, prev.Y))
		}
		return steps
	}
}
