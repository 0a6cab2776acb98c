package world

import "github.com/samdwyer/overland/internal/grid"

// DefaultSearchRadius bounds FindClosestAvailable, in tiles.
const DefaultSearchRadius = 64

// World is the tile store. Only tiles that differ from the generator's output
// are kept; everything else is rebuilt on demand.
type World struct {
	gen       Generator
	overrides map[grid.Key]*Tile
	dirty     []*Tile
	bridges   map[bridgeKey]Bridge

	doorCrossing bool
	searchRadius int
}

// Option configures a World.
type Option func(*World)

// WithDoorCrossing lets door bridges join two different structural tile types.
func WithDoorCrossing(enabled bool) Option {
	return func(w *World) {
		w.doorCrossing = enabled
	}
}

// WithSearchRadius sets the largest ring FindClosestAvailable will examine.
// Non-positive values keep the default.
func WithSearchRadius(tiles int) Option {
	return func(w *World) {
		if tiles > 0 {
			w.searchRadius = tiles
		}
	}
}

// New creates an empty world backed by gen.
func New(gen Generator, opts ...Option) *World {
	w := &World{
		gen:          gen,
		overrides:    make(map[grid.Key]*Tile),
		bridges:      make(map[bridgeKey]Bridge),
		searchRadius: DefaultSearchRadius,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Generator returns the generator backing the world.
func (w *World) Generator() Generator {
	return w.gen
}

// GetTile returns the stored tile at (x, y), or a fresh generated one.
func (w *World) GetTile(x, y int) *Tile {
	if t, ok := w.overrides[grid.KeyOf(x, y)]; ok {
		return t
	}
	return w.generated(x, y)
}

// Tile is GetTile for a grid.Point.
func (w *World) Tile(p grid.Point) *Tile {
	return w.GetTile(p.X, p.Y)
}

// SaveTile stores t at its own coordinate, or drops the override when t is
// indistinguishable from the generated default. The tile is always flagged
// dirty.
func (w *World) SaveTile(t *Tile) {
	t.world = w
	w.overrides[t.Key()] = t
	if t.Equal(w.generated(t.X, t.Y)) {
		w.DeleteTile(t)
	}
	w.flagDirty(t)
}

// DeleteTile removes the override for t's coordinate.
func (w *World) DeleteTile(t *Tile) {
	delete(w.overrides, t.Key())
}

// SetTileType changes the type of tile (x, y) and saves it.
func (w *World) SetTileType(x, y int, tt TileType) *Tile {
	t := w.GetTile(x, y)
	t.Type = tt
	w.SaveTile(t)
	return t
}

// Override returns the stored tile at (x, y), if any.
func (w *World) Override(x, y int) (*Tile, bool) {
	t, ok := w.overrides[grid.KeyOf(x, y)]
	return t, ok
}

// OverrideCount returns how many tiles are stored.
func (w *World) OverrideCount() int {
	return len(w.overrides)
}

// DirtyTiles returns the tiles saved since the last flush, in save order.
func (w *World) DirtyTiles() []*Tile {
	return w.dirty
}

// FlushDirty returns the dirty tiles and resets the list.
func (w *World) FlushDirty() []*Tile {
	dirty := w.dirty
	w.dirty = nil
	return dirty
}

func (w *World) flagDirty(t *Tile) {
	w.dirty = append(w.dirty, t)
}

func (w *World) generated(x, y int) *Tile {
	return &Tile{
		X:     x,
		Y:     y,
		Type:  w.gen.TileType(x, y),
		world: w,
	}
}
