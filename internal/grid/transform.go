package grid

import "math"

// WorldToTile returns the tile containing world position (x, y).
// Negative positions floor toward negative infinity.
func WorldToTile(x, y float64) Point {
	return Point{
		X: int(math.Floor(x / CellSize)),
		Y: int(math.Floor(y / CellSize)),
	}
}

// TileToWorld returns the world position of the top-left corner of tile p.
func TileToWorld(p Point) Vec {
	return Vec{X: float64(p.X * CellSize), Y: float64(p.Y * CellSize)}
}

// TileCenter returns the world position of the centre of tile p.
func TileCenter(p Point) Vec {
	return TileToWorld(p).Add(Vec{X: HalfCell, Y: HalfCell})
}

// Viewport relates screen space to world space through a camera position
// (world pixels, centre of the screen) and half the viewport extent.
type Viewport struct {
	Camera     Vec
	HalfWidth  float64
	HalfHeight float64
}

// NewViewport returns a viewport of the given pixel size centred on the world origin.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{HalfWidth: width / 2, HalfHeight: height / 2}
}

// Resize updates the viewport extent, keeping the camera where it is.
func (v *Viewport) Resize(width, height float64) {
	v.HalfWidth = width / 2
	v.HalfHeight = height / 2
}

// Pan moves the camera by (dx, dy) world pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.Camera.X += dx
	v.Camera.Y += dy
}

// ScreenToWorld converts a screen position to world space.
func (v *Viewport) ScreenToWorld(s Vec) Vec {
	return Vec{
		X: s.X + v.Camera.X - v.HalfWidth,
		Y: s.Y + v.Camera.Y - v.HalfHeight,
	}
}

// WorldToScreen converts a world position to screen space.
func (v *Viewport) WorldToScreen(w Vec) Vec {
	return Vec{
		X: w.X - v.Camera.X + v.HalfWidth,
		Y: w.Y - v.Camera.Y + v.HalfHeight,
	}
}

// ScreenToTile returns the tile under screen position s.
func (v *Viewport) ScreenToTile(s Vec) Point {
	w := v.ScreenToWorld(s)
	return WorldToTile(w.X, w.Y)
}

// TileToScreen returns the screen position of the top-left corner of tile p.
func (v *Viewport) TileToScreen(p Point) Vec {
	return v.WorldToScreen(TileToWorld(p))
}
