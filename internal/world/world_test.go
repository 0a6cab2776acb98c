package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/overland/internal/grid"
)

type testOccupant string

func (o testOccupant) OccupantID() string { return string(o) }

func TestGetTileFallsBackToGenerator(t *testing.T) {
	w := New(GeneratorFunc(func(x, y int) TileType {
		if x < 0 {
			return TypeSand
		}
		return TypeGrass
	}))

	assert.Equal(t, TypeSand, w.GetTile(-3, 9).Type)
	assert.Equal(t, TypeGrass, w.GetTile(3, 9).Type)
	assert.Zero(t, w.OverrideCount(), "reads must not create overrides")
}

func TestSaveTileCollapsesToDefault(t *testing.T) {
	w := New(Flat(TypeGrass))

	tile := w.GetTile(3, 4)
	tile.Reserve()
	require.Equal(t, 1, w.OverrideCount())
	stored, ok := w.Override(3, 4)
	require.True(t, ok)
	assert.True(t, stored.Reserved)

	tile.Clear()
	assert.Zero(t, w.OverrideCount())
	_, ok = w.Override(3, 4)
	assert.False(t, ok)

	fresh := w.GetTile(3, 4)
	assert.True(t, fresh.Equal(&Tile{X: 3, Y: 4, Type: TypeGrass}))
	assert.Len(t, w.DirtyTiles(), 2, "every save is flagged dirty")
}

func TestSaveUnchangedTileStoresNothing(t *testing.T) {
	w := New(Flat(TypeDirt))

	w.SaveTile(w.GetTile(-7, 2))
	assert.Zero(t, w.OverrideCount())

	dirty := w.FlushDirty()
	require.Len(t, dirty, 1)
	assert.Equal(t, grid.Pt(-7, 2), dirty[0].Point())
	assert.Empty(t, w.DirtyTiles())
}

func TestAvailabilityInvariant(t *testing.T) {
	w := New(Flat(TypeGrass))
	unit := testOccupant("u1")

	tile := w.GetTile(0, 0)
	assert.True(t, tile.IsAvailable())

	tile.Reserve()
	assert.True(t, tile.Reserved)
	assert.False(t, tile.Occupied)
	assert.False(t, tile.IsAvailable())

	tile.Occupy(unit)
	assert.True(t, tile.Occupied)
	assert.False(t, tile.Reserved, "occupying drops the reservation")
	assert.Equal(t, unit, tile.Occupant)
	assert.False(t, tile.IsAvailable())

	tile.Reserve()
	assert.True(t, tile.Occupied, "reserving leaves occupancy alone")
	assert.True(t, tile.Reserved)

	tile.Clear()
	assert.True(t, tile.IsAvailable())
	assert.Nil(t, tile.Occupant)
	assert.Zero(t, w.OverrideCount())
}

func TestEqualIgnoresOccupant(t *testing.T) {
	a := &Tile{X: 1, Y: 2, Type: TypeSand, Occupied: true, Occupant: testOccupant("a")}
	b := &Tile{X: 1, Y: 2, Type: TypeSand, Occupied: true, Occupant: testOccupant("b")}
	assert.True(t, a.Equal(b))

	b.Type = TypeDirt
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}

func TestSetTileTypeKeepsOverride(t *testing.T) {
	w := New(Flat(TypeGrass))

	w.SetTileType(2, 2, TypeRock)
	assert.Equal(t, TypeRock, w.GetTile(2, 2).Type)
	assert.Equal(t, 1, w.OverrideCount())

	w.SetTileType(2, 2, TypeGrass)
	assert.Zero(t, w.OverrideCount())
}

func TestTileTypeNames(t *testing.T) {
	for _, tt := range TileTypes() {
		parsed, err := ParseTileType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, parsed)
	}

	_, err := ParseTileType("Marsh")
	assert.Error(t, err)
	assert.Equal(t, "Deep Water", TypeDeepWater.String())
	assert.Equal(t, "weapons", TypeWeapons.String())
	assert.True(t, TypeEngine.IsStructural())
	assert.False(t, TypeSnow.IsStructural())
}
