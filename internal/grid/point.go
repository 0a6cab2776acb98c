// Package grid provides coordinate types and transforms between world, tile and screen space.
package grid

import "math"

// CellSize is the width and height of one tile in world pixels.
const CellSize = 16

// HalfCell is half a tile in world pixels, used to address tile centres.
const HalfCell = CellSize / 2.0

// Point is an integer tile coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Key returns the composite map key for p.
func (p Point) Key() Key {
	return KeyOf(p.X, p.Y)
}

// Vec is a real-valued coordinate in world or screen pixels.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v offset by w.
func (v Vec) Add(w Vec) Vec {
	return Vec{X: v.X + w.X, Y: v.Y + w.Y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Angle returns the heading from a towards b in [0, 2π).
// The convention matches MovePoint: moving from a by Angle(a, b) approaches b.
func Angle(a, b Vec) float64 {
	angle := math.Atan2(a.Y-b.Y, a.X-b.X)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// MovePoint moves p by distance along angle.
func MovePoint(p Vec, angle, distance float64) Vec {
	return Vec{
		X: p.X - math.Cos(angle)*distance,
		Y: p.Y - math.Sin(angle)*distance,
	}
}
