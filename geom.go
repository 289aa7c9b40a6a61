package tiling

import (
	"image"
	"math"
)

// SizeF is a size with float64 components.
type SizeF struct {
	W, H float64
}

// RectF represents a rectangle with float64 coordinates.
type RectF struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewRectF creates a RectF from position and size.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// RectFOf converts an integer rectangle to a RectF.
func RectFOf(r image.Rectangle) RectF {
	return RectF{
		X: float64(r.Min.X),
		Y: float64(r.Min.Y),
		W: float64(r.Dx()),
		H: float64(r.Dy()),
	}
}

// Right returns the right edge x-coordinate.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the bottom edge y-coordinate.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// IsEmpty returns true if the rectangle has zero area.
func (r RectF) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if the interiors of two rectangles overlap.
// Empty rectangles intersect nothing.
func (r RectF) Intersects(other RectF) bool {
	return !(r.IsEmpty() || other.IsEmpty() ||
		other.X >= r.Right() || other.Right() <= r.X ||
		other.Y >= r.Bottom() || other.Bottom() <= r.Y)
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rectangle if they don't intersect.
func (r RectF) Intersect(other RectF) RectF {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.Right(), other.Right())
	y1 := math.Min(r.Bottom(), other.Bottom())

	if x1 <= x0 || y1 <= y0 {
		return RectF{}
	}
	return RectF{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Scale returns r with every coordinate multiplied by (sx, sy).
func (r RectF) Scale(sx, sy float64) RectF {
	return RectF{X: r.X * sx, Y: r.Y * sy, W: r.W * sx, H: r.H * sy}
}

// Offset returns r translated by (dx, dy).
func (r RectF) Offset(dx, dy float64) RectF {
	return RectF{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Inset returns r shrunk by d on every side. Negative d grows it.
func (r RectF) Inset(d float64) RectF {
	return RectF{X: r.X + d, Y: r.Y + d, W: math.Max(0, r.W-2*d), H: math.Max(0, r.H-2*d)}
}

// scaleRect scales an integer rectangle into float space.
func scaleRect(r image.Rectangle, sx, sy float64) RectF {
	return RectFOf(r).Scale(sx, sy)
}

// ToEnclosingRect returns the smallest integer rectangle containing r.
// A zero-sized r keeps its position.
func ToEnclosingRect(r RectF) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())),
		int(math.Ceil(r.Bottom())),
	)
}

// ceiledSize rounds a float size up to integer texels.
func ceiledSize(w, h float64) image.Point {
	return image.Pt(int(math.Ceil(w)), int(math.Ceil(h)))
}

// flooredSize rounds a float size down to integer texels.
func flooredSize(w, h float64) image.Point {
	return image.Pt(int(math.Floor(w)), int(math.Floor(h)))
}

// insetTopLeft moves the top-left corner of r inward by (dx, dy) without
// letting it pass the bottom-right corner.
func insetTopLeft(r image.Rectangle, dx, dy int) image.Rectangle {
	r.Min.X = min(r.Min.X+dx, r.Max.X)
	r.Min.Y = min(r.Min.Y+dy, r.Max.Y)
	return r
}
