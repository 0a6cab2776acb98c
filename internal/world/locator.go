package world

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/overland/internal/grid"
)

// ErrNoAvailableTile is returned when no free tile lies within the search radius.
var ErrNoAvailableTile = errors.New("no available tile")

// ringOffset is an offset (a, -b) in the north-north-east octant, 0 <= a <= b.
// Its seven reflections cover every tile at the same squared distance.
type ringOffset struct {
	a, b int
	dist int
}

func newRingOffset(a, b int) ringOffset {
	return ringOffset{a: a, b: b, dist: a*a + b*b}
}

func lessRing(x, y ringOffset) bool {
	if x.dist != y.dist {
		return x.dist < y.dist
	}
	if x.a != y.a {
		return x.a < y.a
	}
	return x.b < y.b
}

// reflections returns the up to eight tiles at offset o from origin.
// Axis and diagonal offsets produce duplicates; callers dedupe.
func (o ringOffset) reflections(origin grid.Point) [8]grid.Point {
	a, b := o.a, o.b
	return [8]grid.Point{
		origin.Add(grid.Pt(a, -b)),
		origin.Add(grid.Pt(b, -a)),
		origin.Add(grid.Pt(b, a)),
		origin.Add(grid.Pt(a, b)),
		origin.Add(grid.Pt(-a, b)),
		origin.Add(grid.Pt(-b, a)),
		origin.Add(grid.Pt(-b, -a)),
		origin.Add(grid.Pt(-a, -b)),
	}
}

// FindClosestAvailable returns the world position (top-left corner) of the
// closest tile to origin that is free and enterable.
//
// The origin itself is returned whenever it can be entered, occupied or not.
// Otherwise tiles are examined in rings of equal squared distance, each tile
// at most once. Among the free tiles of the first ring that has any, the one
// closest to ref wins; a nil ref means the origin's own world position.
func (w *World) FindClosestAvailable(origin grid.Point, ref *grid.Vec) (grid.Vec, error) {
	if w.CanEnter(origin) {
		return grid.TileToWorld(origin), nil
	}

	reference := grid.TileToWorld(origin)
	if ref != nil {
		reference = *ref
	}

	tested := mapset.New[grid.Key]()
	tested.Put(origin.Key())

	frontier := heap.New[ringOffset](lessRing)
	frontier.Push(newRingOffset(0, 1))
	limit := w.searchRadius * w.searchRadius

	for frontier.Size() > 0 {
		ring, _ := frontier.Peek()
		if ring.dist > limit {
			break
		}

		var candidates []grid.Point
		for {
			o, ok := frontier.Peek()
			if !ok || o.dist != ring.dist {
				break
			}
			frontier.Pop()
			advanceFrontier(frontier, o)

			for _, p := range o.reflections(origin) {
				k := p.Key()
				if tested.Has(k) {
					continue
				}
				tested.Put(k)
				if t := w.Tile(p); t.IsAvailable() && w.allowed(nil, t) {
					candidates = append(candidates, p)
				}
			}
		}

		if len(candidates) > 0 {
			return closestTo(candidates, reference), nil
		}
	}

	return grid.Vec{}, fmt.Errorf("%w within %d tiles of (%d,%d)", ErrNoAvailableTile, w.searchRadius, origin.X, origin.Y)
}

// advanceFrontier queues the next offset in o's column and, when o opens its
// column, the first offset of the column after it.
func advanceFrontier(frontier *heap.Heap[ringOffset], o ringOffset) {
	frontier.Push(newRingOffset(o.a, o.b+1))
	if o.b == max(o.a, 1) {
		frontier.Push(newRingOffset(o.a+1, o.a+1))
	}
}

func closestTo(candidates []grid.Point, reference grid.Vec) grid.Vec {
	var (
		best     grid.Vec
		bestDist = -1.0
	)
	for _, p := range candidates {
		pos := grid.TileToWorld(p)
		d := grid.Distance(pos, reference)
		if bestDist < 0 || d < bestDist {
			best, bestDist = pos, d
		}
	}
	return best
}
