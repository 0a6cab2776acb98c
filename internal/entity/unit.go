// Package entity provides the things that live on the tile world.
package entity

import (
	"math"

	"github.com/google/uuid"

	"github.com/samdwyer/overland/internal/grid"
	"github.com/samdwyer/overland/internal/pathfind"
	"github.com/samdwyer/overland/internal/world"
)

// DefaultSpeed is the distance a unit covers per frame at the reference
// frame rate, in world units.
const DefaultSpeed = 3.0

// Movable is anything that travels across the world between tile centres.
type Movable interface {
	WorldPosition() grid.Vec
	IsMoving() bool
	Advance(w *world.World, dist float64)
}

// Unit is a character that can be selected and sent to a tile.
type Unit struct {
	ID     uuid.UUID
	Index  int  // Order of creation, stable across selection changes
	Symbol rune // Display symbol

	Position  grid.Vec   // Current world position
	Target    grid.Vec   // World position of the tile the unit is heading for
	Direction float64    // Heading, as returned by grid.Angle
	Path      []grid.Vec // Remaining waypoints; empty when standing still
	Speed     float64

	// Pathfinder is the in-flight search, if any.
	Pathfinder *pathfind.Pathfinder

	// StopAtNextWaypoint makes the unit halt on the next waypoint it reaches
	// instead of continuing. Set when a new destination is requested mid-walk.
	StopAtNextWaypoint bool
}

var _ Movable = (*Unit)(nil)

// NewUnit creates a unit standing at the centre of tile and occupies it.
func NewUnit(tile *world.Tile, index int) *Unit {
	pos := grid.TileCenter(tile.Point())
	u := &Unit{
		ID:        uuid.New(),
		Index:     index,
		Symbol:    '@',
		Position:  pos,
		Target:    pos,
		Direction: math.Pi * 1.5,
		Speed:     DefaultSpeed,
	}
	tile.Occupy(u)
	return u
}

// OccupantID implements world.Occupant.
func (u *Unit) OccupantID() string {
	return u.ID.String()
}

// WorldPosition returns the unit's current world position.
func (u *Unit) WorldPosition() grid.Vec {
	return u.Position
}

// TilePosition returns the tile under the unit.
func (u *Unit) TilePosition() grid.Point {
	return grid.WorldToTile(u.Position.X, u.Position.Y)
}

// TargetTile returns the tile the unit is heading for, or standing on.
func (u *Unit) TargetTile() grid.Point {
	return grid.WorldToTile(u.Target.X, u.Target.Y)
}

// IsMoving reports whether the unit has waypoints left.
func (u *Unit) IsMoving() bool {
	return len(u.Path) > 0
}

// IsSearching reports whether a path search is in flight.
func (u *Unit) IsSearching() bool {
	return u.Pathfinder != nil && u.Pathfinder.IsActive()
}

// CancelSearch stops and drops the in-flight search.
func (u *Unit) CancelSearch() {
	if u.Pathfinder != nil {
		u.Pathfinder.Stop()
		u.Pathfinder = nil
	}
}

// ResumeSearch gives the in-flight search one budget of work. A search that
// has finished is dropped.
func (u *Unit) ResumeSearch() {
	if u.Pathfinder == nil {
		return
	}
	if u.Pathfinder.IsActive() {
		u.Pathfinder.Update()
	}
	if !u.Pathfinder.IsActive() {
		u.Pathfinder = nil
	}
}

// FollowPath replaces the route with the centres of path's tiles. The first
// tile is where the unit already is and is skipped.
func (u *Unit) FollowPath(path []grid.Point) {
	if len(path) < 2 {
		return
	}
	route := make([]grid.Vec, 0, len(path)-1)
	for _, p := range path[1:] {
		route = append(route, grid.TileCenter(p))
	}
	u.Path = route
	u.Target = route[len(route)-1]
	u.Direction = grid.Angle(u.Position, route[0])
	u.StopAtNextWaypoint = false
}

// Advance moves the unit dist world units along its path. Reaching the last
// waypoint occupies the target tile; reaching a free waypoint while
// StopAtNextWaypoint is set releases the old target and occupies that
// waypoint instead. Waypoints held by other units are walked past, so the
// reserved target is the last place the unit can stop.
func (u *Unit) Advance(w *world.World, dist float64) {
	for len(u.Path) > 0 {
		next := u.Path[0]
		remaining := grid.Distance(u.Position, next)
		if remaining > dist {
			u.Position = grid.MovePoint(u.Position, u.Direction, dist)
			return
		}

		if len(u.Path) == 1 {
			u.Position = u.Target
			u.StopAtNextWaypoint = false
			u.settle(w.Tile(u.TilePosition()))
			return
		}

		u.Position = next
		if u.StopAtNextWaypoint && w.Tile(u.TilePosition()).IsAvailable() {
			old := w.Tile(u.TargetTile())
			old.AvoidNextClear()
			old.Clear()

			u.Target = u.Position
			u.StopAtNextWaypoint = false
			u.settle(w.Tile(u.TilePosition()))
			return
		}

		u.Path = u.Path[1:]
		u.Direction = grid.Angle(u.Position, u.Path[0])
		dist -= remaining
	}
}

func (u *Unit) settle(t *world.Tile) {
	t.AvoidNextClear()
	t.Occupy(u)
	u.Path = nil
}
