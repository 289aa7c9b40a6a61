package tiling

import (
	"image"
	"iter"
)

// iteratorState tracks where an Iterator is in its scan.
type iteratorState uint8

const (
	// iterUninitialized: no tiling bound; nothing to scan.
	iterUninitialized iteratorState = iota

	// iterEmpty: the destination rect, or its intersection with the
	// content, is empty.
	iterEmpty

	// iterScanning: the current index is inside the scan bounds.
	iterScanning

	// iterExhausted: advanced past the bottom-right tile.
	iterExhausted
)

// textureSlack absorbs floating point noise when checking that texture
// rectangles stay inside their texture.
const textureSlack = 1e-6

// Iterator walks the tiles covering a destination rectangle drawn at some
// destination scale.
//
// For each tile it yields a geometry rect in destination space and the
// matching texture rect inside the tile texture. The geometry rects of one
// scan tile the covered destination area exactly: they never overlap and
// leave no gaps, even though each one is rounded independently.
//
// Usage:
//
//	for it := t.NewIterator(scale, rect); it.Valid(); it.Next() {
//	    draw(it.Tile(), it.GeometryRect(), it.TextureRect())
//	}
//
// Cells without a tile are still visited; Tile returns nil for them.
type Iterator struct {
	tiling *Tiling
	state  iteratorState

	destRect       image.Rectangle
	destToContentX float64
	destToContentY float64

	// Inclusive scan bounds.
	left, top, right, bottom int

	i, j         int
	tile         *Tile
	geometryRect image.Rectangle
	textureRect  RectF
}

// NewIterator creates an iterator over the tiles of t covering destRect,
// where destRect is in a space scaled by destScale relative to layer space.
// A nil tiling yields an iterator with nothing to visit.
func NewIterator(t *Tiling, destScale float64, destRect image.Rectangle) *Iterator {
	it := &Iterator{
		tiling:   t,
		state:    iterUninitialized,
		destRect: destRect,
		right:    -1,
		bottom:   -1,
	}
	if t == nil {
		return it
	}
	it.state = iterEmpty
	if destRect.Empty() || !(destScale > 0) {
		return it
	}

	destToContent := t.contentsScale / destScale
	it.destToContentX = destToContent
	it.destToContentY = destToContent

	// Do not draw the last row/column of texels if they don't have enough
	// rasterization coverage, i.e. the ceiled content size does not equal
	// the floored size.
	size := t.ContentSizeF()
	ceil := ceiledSize(size.W, size.H)
	floor := flooredSize(size.W, size.H)
	if floor.X != ceil.X {
		it.destToContentX = destToContent * float64(floor.X) / float64(ceil.X)
	}
	if floor.Y != ceil.Y {
		it.destToContentY = destToContent * float64(floor.Y) / float64(ceil.Y)
	}

	contentRect := ToEnclosingRect(scaleRect(destRect, it.destToContentX, it.destToContentY))
	// Index lookups clamp to valid ranges, so non-intersection has to be
	// ruled out first.
	left, top, right, bottom, ok := t.grid.IndexRange(contentRect)
	if !ok {
		return it
	}

	it.left, it.top, it.right, it.bottom = left, top, right, bottom
	it.i = left - 1
	it.j = top
	it.state = iterScanning
	it.Next()
	return it
}

// NewIterator is shorthand for NewIterator(t, destScale, destRect).
func (t *Tiling) NewIterator(destScale float64, destRect image.Rectangle) *Iterator {
	return NewIterator(t, destScale, destRect)
}

// Valid reports whether the iterator points at a grid cell.
func (it *Iterator) Valid() bool {
	return it.state == iterScanning
}

// Next advances to the next cell, left to right then top to bottom.
func (it *Iterator) Next() {
	if it.state != iterScanning {
		return
	}

	firstTime := it.i < it.left
	newRow := false
	it.i++
	if it.i > it.right {
		it.i = it.left
		it.j++
		newRow = true
		if it.j > it.bottom {
			it.tile = nil
			it.textureRect = RectF{}
			it.state = iterExhausted
			return
		}
	}

	it.tile = it.tiling.TileAt(it.i, it.j)

	// Due to floating point rounding and enclosing-rect conversion, tiles
	// might overlap in destination space on the edges.
	last := it.geometryRect
	contentRect := it.tiling.grid.TileBounds(it.i, it.j)
	it.geometryRect = ToEnclosingRect(
		scaleRect(contentRect, 1/it.destToContentX, 1/it.destToContentY),
	).Intersect(it.destRect)

	if !firstTime {
		// Running off the bottom-right edge is handled by the intersection
		// with destRect. Here the new rect is clipped so that it starts
		// where the previous one ended.
		var minLeft, minTop int
		if newRow {
			minLeft = it.destRect.Min.X
			minTop = last.Max.Y
		} else {
			minLeft = last.Max.X
			minTop = last.Min.Y
		}
		it.geometryRect = insetTopLeft(it.geometryRect,
			max(0, minLeft-it.geometryRect.Min.X),
			max(0, minTop-it.geometryRect.Min.Y))
	}

	it.textureRect = it.computeTextureRect()
}

// Index returns the grid cell of the current position.
func (it *Iterator) Index() TileIndex {
	return TileIndex{I: it.i, J: it.j}
}

// Tile returns the tile at the current cell, or nil if the cell is empty.
func (it *Iterator) Tile() *Tile {
	return it.tile
}

// GeometryRect returns the destination-space rect covered by the current
// cell.
func (it *Iterator) GeometryRect() image.Rectangle {
	return it.geometryRect
}

// TextureSize returns the size of every tile texture of the tiling.
func (it *Iterator) TextureSize() image.Point {
	if it.tiling == nil {
		return image.Point{}
	}
	return it.tiling.grid.MaxTextureSize()
}

// TextureRect returns the part of the current tile texture that maps onto
// GeometryRect. The rect always lies within [0, TextureSize].
func (it *Iterator) TextureRect() RectF {
	if it.state != iterScanning {
		return RectF{}
	}
	return it.textureRect
}

// computeTextureRect maps the current geometry rect into texture space and
// clamps it to the texture. Rounding the geometry rect outward when drawing
// downscaled can overshoot the texture edge by up to one texel step.
func (it *Iterator) computeTextureRect() RectF {
	origin := it.tiling.grid.TileBoundsWithBorder(it.i, it.j).Min

	// Convert from dest space => content space => texture space.
	r := RectFOf(it.geometryRect).
		Scale(it.destToContentX, it.destToContentY).
		Offset(-float64(origin.X), -float64(origin.Y))

	// Overshoot within one texel step is expected rounding; anything
	// beyond it means the geometry and the grid disagree.
	size := it.TextureSize()
	tol := max(it.destToContentX, it.destToContentY) + textureSlack
	if r.X < -tol || r.Y < -tol ||
		r.Right() > float64(size.X)+tol || r.Bottom() > float64(size.Y)+tol {
		Logger().Warn("tiling: texture rect outside tile texture",
			"tiling", it.tiling.id, "index", it.Index(), "texture_rect", r, "texture_size", size)
	}
	return clampRect(r, size)
}

// clampRect limits r to the rectangle (0, 0)-(size). Unlike Intersect it
// keeps the position of rects that collapse to zero size.
func clampRect(r RectF, size image.Point) RectF {
	w, h := float64(size.X), float64(size.Y)
	x0 := min(max(r.X, 0), w)
	y0 := min(max(r.Y, 0), h)
	x1 := min(max(r.Right(), x0), w)
	y1 := min(max(r.Bottom(), y0), h)
	return RectF{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Coverage is one step of a geometry scan.
type Coverage struct {
	Index        TileIndex
	Tile         *Tile
	GeometryRect image.Rectangle
	TextureRect  RectF
	TextureSize  image.Point
}

// Coverage returns the current step as a value.
func (it *Iterator) Coverage() Coverage {
	return Coverage{
		Index:        it.Index(),
		Tile:         it.tile,
		GeometryRect: it.geometryRect,
		TextureRect:  it.TextureRect(),
		TextureSize:  it.TextureSize(),
	}
}

// Cover returns an iterator over the cells covering destRect at destScale.
//
//	for c := range t.Cover(1.5, image.Rect(0, 0, 300, 200)) {
//	    draw(c.Tile, c.GeometryRect, c.TextureRect)
//	}
func (t *Tiling) Cover(destScale float64, destRect image.Rectangle) iter.Seq[Coverage] {
	return func(yield func(Coverage) bool) {
		for it := NewIterator(t, destScale, destRect); it.Valid(); it.Next() {
			if !yield(it.Coverage()) {
				return
			}
		}
	}
}
