// Package core provides the primitives shared by the simulation and its
// front ends: world-space boxes, clamping helpers, input intents and the
// character screen buffer. It has no external dependencies so that the
// simulation packages stay pure and testable.
package core

import "math"

// Box is an axis-aligned bounding box in world units.
// X, Y is the top-left corner; W and H are full extents.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box with the given top-left corner and extents.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// CenterX returns the horizontal midpoint.
func (b Box) CenterX() float64 {
	return b.X + b.W/2
}

// CenterY returns the vertical midpoint.
func (b Box) CenterY() float64 {
	return b.Y + b.H/2
}

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Bottom() || o.Y >= b.Bottom() {
		return false
	}
	return true
}

// Moved returns a copy of the box translated to (x, y).
func (b Box) Moved(x, y float64) Box {
	b.X, b.Y = x, y
	return b
}

// Valid reports whether both extents are positive and finite.
func (b Box) Valid() bool {
	return b.W > 0 && b.H > 0 && !math.IsInf(b.W, 0) && !math.IsInf(b.H, 0)
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// FloorDiv returns floor(v / size) as an int.
func FloorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}
