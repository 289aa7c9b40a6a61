package tiling

import "image"

// Region is a set of layer-space pixels stored as pairwise-disjoint
// rectangles. The zero Region is empty and ready to use.
type Region struct {
	rects []image.Rectangle
}

// NewRegion creates a region covering the union of rects.
func NewRegion(rects ...image.Rectangle) Region {
	var reg Region
	for _, r := range rects {
		reg.Union(r)
	}
	return reg
}

// Union adds r to the region. Only the parts of r not already covered are
// stored, so the rectangles stay disjoint.
func (reg *Region) Union(r image.Rectangle) {
	if r.Empty() {
		return
	}
	pieces := []image.Rectangle{r}
	for _, existing := range reg.rects {
		var next []image.Rectangle
		for _, p := range pieces {
			next = appendDifference(next, p, existing)
		}
		pieces = next
		if len(pieces) == 0 {
			return
		}
	}
	reg.rects = append(reg.rects, pieces...)
}

// Subtract removes r from the region.
func (reg *Region) Subtract(r image.Rectangle) {
	if r.Empty() || len(reg.rects) == 0 {
		return
	}
	var out []image.Rectangle
	for _, existing := range reg.rects {
		out = appendDifference(out, existing, r)
	}
	reg.rects = out
}

// Rects returns the disjoint rectangles making up the region.
// The returned slice should not be modified.
func (reg Region) Rects() []image.Rectangle {
	return reg.rects
}

// IsEmpty reports whether the region covers no pixel.
func (reg Region) IsEmpty() bool {
	return len(reg.rects) == 0
}

// Contains reports whether pixel p is covered by the region.
func (reg Region) Contains(p image.Point) bool {
	for _, r := range reg.rects {
		if p.In(r) {
			return true
		}
	}
	return false
}

// Area returns the number of pixels covered by the region.
func (reg Region) Area() int {
	area := 0
	for _, r := range reg.rects {
		area += r.Dx() * r.Dy()
	}
	return area
}

// Bounds returns the smallest rectangle containing the region.
func (reg Region) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, r := range reg.rects {
		b = b.Union(r)
	}
	return b
}

// appendDifference appends a minus b to dst as up to four disjoint
// rectangles: full-width bands above and below b, then the left and right
// slivers beside it.
func appendDifference(dst []image.Rectangle, a, b image.Rectangle) []image.Rectangle {
	in := a.Intersect(b)
	if in.Empty() {
		return append(dst, a)
	}
	if in.Min.Y > a.Min.Y {
		dst = append(dst, image.Rect(a.Min.X, a.Min.Y, a.Max.X, in.Min.Y))
	}
	if in.Max.Y < a.Max.Y {
		dst = append(dst, image.Rect(a.Min.X, in.Max.Y, a.Max.X, a.Max.Y))
	}
	if in.Min.X > a.Min.X {
		dst = append(dst, image.Rect(a.Min.X, in.Min.Y, in.Min.X, in.Max.Y))
	}
	if in.Max.X < a.Max.X {
		dst = append(dst, image.Rect(in.Max.X, in.Min.Y, a.Max.X, in.Max.Y))
	}
	return dst
}
