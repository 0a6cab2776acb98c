package world

import "github.com/samdwyer/overland/internal/grid"

// Occupant is anything that can stand on a tile. Tiles only keep a
// back-reference; the occupant owns its own state.
type Occupant interface {
	OccupantID() string
}

// Tile is a single map cell. Tiles obtained from a World write themselves
// back to it on every mutation.
type Tile struct {
	X, Y     int
	Type     TileType
	Occupied bool
	Reserved bool
	Occupant Occupant

	// AvoidNextRedraw asks the renderer to skip repainting the background on
	// the next dirty-tile pass.
	AvoidNextRedraw bool

	world *World
}

// Point returns the tile coordinate.
func (t *Tile) Point() grid.Point {
	return grid.Pt(t.X, t.Y)
}

// Key returns the tile's store key.
func (t *Tile) Key() grid.Key {
	return grid.KeyOf(t.X, t.Y)
}

// IsAvailable reports whether the tile is neither occupied nor reserved.
func (t *Tile) IsAvailable() bool {
	return !t.Occupied && !t.Reserved
}

// Occupy places o on the tile. Occupying always drops a reservation.
func (t *Tile) Occupy(o Occupant) {
	t.Occupant = o
	t.Occupied = true
	t.Reserved = false
	t.save()
}

// Reserve marks the tile as the destination of a unit in transit.
func (t *Tile) Reserve() {
	t.Reserved = true
	t.save()
}

// Clear removes any occupant and reservation.
func (t *Tile) Clear() {
	t.Occupant = nil
	t.Occupied = false
	t.Reserved = false
	t.save()
}

// AvoidNextClear sets AvoidNextRedraw.
func (t *Tile) AvoidNextClear() {
	t.AvoidNextRedraw = true
}

// Equal compares position, type and occupancy flags. Occupant identity is
// ignored.
func (t *Tile) Equal(o *Tile) bool {
	return o != nil &&
		t.X == o.X &&
		t.Y == o.Y &&
		t.Type == o.Type &&
		t.Occupied == o.Occupied &&
		t.Reserved == o.Reserved
}

func (t *Tile) save() {
	if t.world != nil {
		t.world.SaveTile(t)
	}
}
