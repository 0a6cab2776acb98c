package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/overland/internal/entity"
	"github.com/samdwyer/overland/internal/gamedata"
	"github.com/samdwyer/overland/internal/grid"
	"github.com/samdwyer/overland/internal/world"
)

func testPalette(t *testing.T) Palette {
	t.Helper()
	pal, err := NewPalette(gamedata.MustLoadTerrainRegistry())
	require.NoError(t, err)
	return pal
}

func testScreen(t *testing.T, cols, rows int) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	s, err := NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(cols, rows)
	t.Cleanup(s.Close)
	return s
}

func TestPaletteCoversEveryTileType(t *testing.T) {
	pal := testPalette(t)
	for _, tt := range world.TileTypes() {
		assert.NotEqual(t, '?', pal.Swatch(tt).Glyph, "no glyph for %s", tt)
	}
	assert.Equal(t, '"', pal.Swatch(world.TypeGrass).Glyph)
}

func TestCellTileRoundTrip(t *testing.T) {
	view := grid.NewViewport(0, 0)
	Fit(view, 21, 11)
	view.Pan(3*grid.CellSize, -2*grid.CellSize)

	for cy := 0; cy < 11; cy++ {
		for cx := 0; cx < 21; cx++ {
			p := CellTile(view, cx, cy)
			gx, gy := TileCell(view, p)
			assert.Equal(t, cx, gx)
			assert.Equal(t, cy, gy)
		}
	}
}

func TestEdgeArrow(t *testing.T) {
	assert.Equal(t, '→', edgeArrow(5, 0))
	assert.Equal(t, '←', edgeArrow(-5, 0))
	assert.Equal(t, '↓', edgeArrow(0, 3))
	assert.Equal(t, '↑', edgeArrow(0, -3))
	assert.Equal(t, '↗', edgeArrow(4, -4))
}

func TestRenderDrawsTerrainUnitsAndStatus(t *testing.T) {
	screen := testScreen(t, 20, 10)
	w := world.New(world.Flat(world.TypeGrass))
	view := grid.NewViewport(0, 0)
	Fit(view, 20, 9)

	u := entity.NewUnit(w.GetTile(0, 0), 0)
	r := NewRenderer(screen, testPalette(t))
	r.Render(Scene{World: w, View: view, Units: []*entity.Unit{u}, Status: "hello"})

	cx, cy := TileCell(view, grid.Pt(0, 0))
	ch, _ := screen.Content(cx, cy)
	assert.Equal(t, '@', ch)

	ch, _ = screen.Content(0, 0)
	assert.Equal(t, '"', ch)

	ch, _ = screen.Content(0, 9)
	assert.Equal(t, 'h', ch)
}

func TestRenderRepaintsDirtyAndVacatedTiles(t *testing.T) {
	screen := testScreen(t, 20, 10)
	w := world.New(world.Flat(world.TypeGrass))
	view := grid.NewViewport(0, 0)
	Fit(view, 20, 9)
	r := NewRenderer(screen, testPalette(t))

	u := entity.NewUnit(w.GetTile(0, 0), 0)
	r.Render(Scene{World: w, View: view, Units: []*entity.Unit{u}})

	// Move the unit by hand and reserve a tile.
	w.GetTile(0, 0).Clear()
	u.Position = grid.TileCenter(grid.Pt(1, 0))
	w.GetTile(1, 0).Occupy(u)
	w.GetTile(2, 1).Reserve()
	r.Render(Scene{World: w, View: view, Units: []*entity.Unit{u}})

	cx, cy := TileCell(view, grid.Pt(0, 0))
	ch, _ := screen.Content(cx, cy)
	assert.Equal(t, '"', ch, "vacated tile shows terrain again")

	cx, cy = TileCell(view, grid.Pt(1, 0))
	ch, _ = screen.Content(cx, cy)
	assert.Equal(t, '@', ch)

	cx, cy = TileCell(view, grid.Pt(2, 1))
	ch, _ = screen.Content(cx, cy)
	assert.Equal(t, 'o', ch, "reserved marker")
	assert.Empty(t, w.DirtyTiles())
}

func TestRenderOffscreenUnitArrow(t *testing.T) {
	screen := testScreen(t, 20, 10)
	w := world.New(world.Flat(world.TypeGrass))
	view := grid.NewViewport(0, 0)
	Fit(view, 20, 9)

	u := entity.NewUnit(w.GetTile(100, 0), 0)
	r := NewRenderer(screen, testPalette(t))
	r.Render(Scene{World: w, View: view, Units: []*entity.Unit{u}})

	_, cy := TileCell(view, grid.Pt(100, 0))
	ch, _ := screen.Content(19, cy)
	assert.Equal(t, '→', ch)
}

func TestDump(t *testing.T) {
	gen := world.GeneratorFunc(func(x, y int) world.TileType {
		if x < 0 {
			return world.TypeWater
		}
		return world.TypeSand
	})
	w := world.New(gen)

	var buf bytes.Buffer
	require.NoError(t, Dump(context.Background(), &buf, w, testPalette(t), grid.Pt(0, 0), 4, 2))

	lines := strings.Split(strings.TrimSuffix(color.ClearCode(buf.String()), "\n"), "\n")
	assert.Equal(t, []string{"~~..", "~~.."}, lines)
}
