package ui

import (
	"math"

	"github.com/samdwyer/overland/internal/grid"
)

// One terminal cell shows one tile. The viewport is kept in world units with
// an even number of cells each side of the camera, so cell and tile borders
// line up as long as the camera moves in whole tiles.

// Fit sizes view to a terminal of cols x rows cells.
func Fit(view *grid.Viewport, cols, rows int) {
	view.Resize(float64((cols/2)*2*grid.CellSize), float64((rows/2)*2*grid.CellSize))
}

// CellTile returns the tile shown in cell (cx, cy).
func CellTile(view *grid.Viewport, cx, cy int) grid.Point {
	return view.ScreenToTile(grid.V(
		float64(cx*grid.CellSize)+grid.HalfCell,
		float64(cy*grid.CellSize)+grid.HalfCell,
	))
}

// TileCell returns the cell showing tile p. It may be off screen.
func TileCell(view *grid.Viewport, p grid.Point) (cx, cy int) {
	return worldCell(view, grid.TileToWorld(p))
}

func worldCell(view *grid.Viewport, pos grid.Vec) (cx, cy int) {
	s := view.WorldToScreen(pos)
	return int(math.Floor(s.X / grid.CellSize)), int(math.Floor(s.Y / grid.CellSize))
}

// edgeArrow picks the arrow that points from the clamped cell toward an
// off-screen position.
func edgeArrow(dx, dy int) rune {
	angle := math.Atan2(float64(dy), float64(dx))
	octant := int(math.Round(angle/(math.Pi/4))+8) % 8
	return [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}[octant]
}
