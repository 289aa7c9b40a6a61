// Package grid provides tile addressing for a tiled content surface.
//
// A Grid divides a content area of a given total size into tiles no larger
// than a maximum texture size. Neighbouring tiles may share a border of
// texels so that bilinear sampling at tile edges never reads outside valid
// data. Key features:
//
//   - Tile bounds with and without border in content space
//   - Clamped content-coordinate to tile-index mapping
//   - Row-major iteration over the tiles covering a rectangle
//   - Difference iteration for retiring tiles when a region shrinks
//
// Thread safety: Grid is NOT thread-safe. It is owned by a single tiling
// and mutated on one goroutine.
package grid

import "image"

// Grid describes how a content area is split into tiles.
//
// Tiles are laid out on an evenly spaced lattice of interior size
// maxTextureSize - 2*borderTexels. The first tile additionally covers the
// leading border and the last tile covers whatever remains of the content.
type Grid struct {
	// maxTextureSize is the largest tile (including border) in texels.
	maxTextureSize image.Point

	// totalSize is the content size covered by the grid.
	totalSize image.Point

	// borderTexels is the border shared between neighbouring tiles.
	borderTexels int

	// numTilesX is the number of tile columns.
	numTilesX int

	// numTilesY is the number of tile rows.
	numTilesY int
}

// New creates a grid for the given maximum tile size, content size and
// border width.
func New(maxTextureSize, totalSize image.Point, borderTexels int) *Grid {
	g := &Grid{
		maxTextureSize: maxTextureSize,
		totalSize:      totalSize,
		borderTexels:   max(borderTexels, 0),
	}
	g.recompute()
	return g
}

// SetTotalSize changes the content size covered by the grid.
func (g *Grid) SetTotalSize(size image.Point) {
	g.totalSize = size
	g.recompute()
}

// SetMaxTextureSize changes the maximum tile size.
func (g *Grid) SetMaxTextureSize(size image.Point) {
	g.maxTextureSize = size
	g.recompute()
}

// SetBorderTexels changes the border width shared by neighbouring tiles.
func (g *Grid) SetBorderTexels(border int) {
	g.borderTexels = max(border, 0)
	g.recompute()
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

func (g *Grid) recompute() {
	g.numTilesX = numTiles(g.maxTextureSize.X, g.totalSize.X, g.borderTexels)
	g.numTilesY = numTiles(g.maxTextureSize.Y, g.totalSize.Y, g.borderTexels)
}

// numTiles computes the tile count along one axis.
func numTiles(maxTextureSize, totalSize, border int) int {
	if totalSize <= 0 {
		return 0
	}
	inner := maxTextureSize - 2*border
	if inner <= 0 {
		if maxTextureSize >= totalSize {
			return 1
		}
		return 0
	}
	return max(1, 1+(totalSize-1-2*border)/inner)
}

// MaxTextureSize returns the maximum tile size including border.
func (g *Grid) MaxTextureSize() image.Point {
	return g.maxTextureSize
}

// TotalSize returns the content size covered by the grid.
func (g *Grid) TotalSize() image.Point {
	return g.totalSize
}

// BorderTexels returns the border width.
func (g *Grid) BorderTexels() int {
	return g.borderTexels
}

// NumTilesX returns the number of tile columns.
func (g *Grid) NumTilesX() int {
	return g.numTilesX
}

// NumTilesY returns the number of tile rows.
func (g *Grid) NumTilesY() int {
	return g.numTilesY
}

// TileCount returns the total number of grid cells.
func (g *Grid) TileCount() int {
	return g.numTilesX * g.numTilesY
}

// TileXIndexFromSrcCoord returns the column owning content x coordinate
// src. The result is always a valid column, even for coordinates outside
// the content area.
func (g *Grid) TileXIndexFromSrcCoord(src int) int {
	return indexFromSrcCoord(src, g.maxTextureSize.X, g.borderTexels, g.numTilesX)
}

// TileYIndexFromSrcCoord returns the row owning content y coordinate src.
// The result is clamped like TileXIndexFromSrcCoord.
func (g *Grid) TileYIndexFromSrcCoord(src int) int {
	return indexFromSrcCoord(src, g.maxTextureSize.Y, g.borderTexels, g.numTilesY)
}

func indexFromSrcCoord(src, maxTextureSize, border, n int) int {
	if n <= 1 {
		return 0
	}
	inner := maxTextureSize - 2*border
	i := (src - border) / inner
	return min(max(i, 0), n-1)
}

// TilePositionX returns the content x coordinate of column i, excluding border.
func (g *Grid) TilePositionX(i int) int {
	return tilePosition(i, g.maxTextureSize.X, g.borderTexels)
}

// TilePositionY returns the content y coordinate of row j, excluding border.
func (g *Grid) TilePositionY(j int) int {
	return tilePosition(j, g.maxTextureSize.Y, g.borderTexels)
}

func tilePosition(i, maxTextureSize, border int) int {
	pos := (maxTextureSize - 2*border) * i
	if i != 0 {
		pos += border
	}
	return pos
}

// TileSizeX returns the width of column i, excluding border.
func (g *Grid) TileSizeX(i int) int {
	return tileSize(i, g.numTilesX, g.maxTextureSize.X, g.totalSize.X, g.borderTexels)
}

// TileSizeY returns the height of row j, excluding border.
func (g *Grid) TileSizeY(j int) int {
	return tileSize(j, g.numTilesY, g.maxTextureSize.Y, g.totalSize.Y, g.borderTexels)
}

func tileSize(i, n, maxTextureSize, totalSize, border int) int {
	switch {
	case i == 0 && n == 1:
		return totalSize
	case i == 0:
		return maxTextureSize - border
	case i < n-1:
		return maxTextureSize - 2*border
	default:
		return totalSize - tilePosition(i, maxTextureSize, border)
	}
}

// InBounds reports whether (i, j) addresses a cell of the grid.
func (g *Grid) InBounds(i, j int) bool {
	return i >= 0 && i < g.numTilesX && j >= 0 && j < g.numTilesY
}

// TileBounds returns the content-space bounds of tile (i, j) without border.
// Panics if (i, j) is outside the grid.
func (g *Grid) TileBounds(i, j int) image.Rectangle {
	g.assertTile(i, j)
	x := g.TilePositionX(i)
	y := g.TilePositionY(j)
	return image.Rect(x, y, x+g.TileSizeX(i), y+g.TileSizeY(j))
}

// TileBoundsWithBorder returns the content-space bounds of tile (i, j)
// grown by the border on every side that has a neighbouring tile.
// Panics if (i, j) is outside the grid.
func (g *Grid) TileBoundsWithBorder(i, j int) image.Rectangle {
	r := g.TileBounds(i, j)
	if g.borderTexels == 0 {
		return r
	}
	if i > 0 {
		r.Min.X -= g.borderTexels
	}
	if i < g.numTilesX-1 {
		r.Max.X += g.borderTexels
	}
	if j > 0 {
		r.Min.Y -= g.borderTexels
	}
	if j < g.numTilesY-1 {
		r.Max.Y += g.borderTexels
	}
	return r
}

func (g *Grid) assertTile(i, j int) {
	if !g.InBounds(i, j) {
		panic("grid: tile index out of range")
	}
}

// IndexRange returns the inclusive index bounds of the tiles intersecting
// the content rectangle r. ok is false when r does not intersect the
// content area or the grid has no tiles along either axis.
func (g *Grid) IndexRange(r image.Rectangle) (left, top, right, bottom int, ok bool) {
	r = r.Intersect(image.Rectangle{Max: g.totalSize})
	if r.Empty() || g.numTilesX == 0 || g.numTilesY == 0 {
		return 0, 0, -1, -1, false
	}
	left = g.TileXIndexFromSrcCoord(r.Min.X)
	top = g.TileYIndexFromSrcCoord(r.Min.Y)
	right = g.TileXIndexFromSrcCoord(r.Max.X - 1)
	bottom = g.TileYIndexFromSrcCoord(r.Max.Y - 1)
	return left, top, right, bottom, true
}

// ForEachInRect calls fn for every tile intersecting the content rectangle
// r in row-major order (left-to-right, top-to-bottom).
func (g *Grid) ForEachInRect(r image.Rectangle, fn func(i, j int)) {
	for it := g.Iterate(r); it.Valid(); it.Next() {
		fn(it.Index())
	}
}
