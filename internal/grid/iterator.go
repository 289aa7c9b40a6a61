package grid

import "image"

// Iterator walks the tiles intersecting a content rectangle in row-major
// order. The zero Iterator is exhausted.
//
// Usage:
//
//	for it := g.Iterate(rect); it.Valid(); it.Next() {
//	    i, j := it.Index()
//	}
type Iterator struct {
	left, top, right, bottom int
	i, j                     int
	valid                    bool
}

// Iterate returns an iterator over the tiles intersecting r.
// The rectangle is clipped to the content area first.
func (g *Grid) Iterate(r image.Rectangle) Iterator {
	left, top, right, bottom, ok := g.IndexRange(r)
	if !ok {
		return Iterator{}
	}
	return Iterator{
		left: left, top: top, right: right, bottom: bottom,
		i: left, j: top,
		valid: true,
	}
}

// Valid reports whether the iterator points at a tile.
func (it *Iterator) Valid() bool {
	return it.valid
}

// Index returns the current tile index.
func (it *Iterator) Index() (i, j int) {
	return it.i, it.j
}

// Next advances to the next tile.
func (it *Iterator) Next() {
	if !it.valid {
		return
	}
	it.i++
	if it.i > it.right {
		it.i = it.left
		it.j++
		if it.j > it.bottom {
			it.valid = false
		}
	}
}

// DifferenceIterator walks, in row-major order, the tiles that intersect a
// "consider" rectangle but lie outside the tile index range of an "ignore"
// rectangle.
type DifferenceIterator struct {
	consider Iterator

	// Inclusive ignore bounds. An empty ignore range has right < left.
	ignoreLeft, ignoreTop, ignoreRight, ignoreBottom int
}

// Difference returns an iterator over the tiles covering consider that do
// not cover ignore.
func (g *Grid) Difference(consider, ignore image.Rectangle) DifferenceIterator {
	d := DifferenceIterator{
		consider:    g.Iterate(consider),
		ignoreRight: -1, ignoreBottom: -1,
	}
	if l, t, r, b, ok := g.IndexRange(ignore); ok {
		d.ignoreLeft, d.ignoreTop, d.ignoreRight, d.ignoreBottom = l, t, r, b
	}
	if d.consider.Valid() && d.ignored() {
		d.Next()
	}
	return d
}

// Valid reports whether the iterator points at a tile.
func (d *DifferenceIterator) Valid() bool {
	return d.consider.Valid()
}

// Index returns the current tile index.
func (d *DifferenceIterator) Index() (i, j int) {
	return d.consider.Index()
}

// Next advances to the next tile outside the ignore range.
func (d *DifferenceIterator) Next() {
	for {
		d.consider.Next()
		if !d.consider.Valid() || !d.ignored() {
			return
		}
	}
}

func (d *DifferenceIterator) ignored() bool {
	i, j := d.consider.Index()
	return i >= d.ignoreLeft && i <= d.ignoreRight &&
		j >= d.ignoreTop && j <= d.ignoreBottom
}
