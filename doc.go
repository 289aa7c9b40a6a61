// Package tiling splits a large drawable layer into a grid of fixed-size
// tiles at a given contents scale and computes the scheduling priority of
// each tile.
//
// # Overview
//
// A Tiling tracks which tiles of a layer currently exist. Tiles are created
// through a host-provided TileFactory when part of the layer becomes
// exposed, replaced when their content is invalidated, and dropped when the
// layer shrinks. A raster scheduler reads the per-tile Priority values to
// decide what to paint first.
//
// # Quick Start
//
//	t := tiling.New(1.0, tiling.WithClient(host))
//	t.SetLayerBounds(image.Pt(1024, 4096))
//
//	// Content changed: replace the affected tiles
//	t.Invalidate(tiling.NewRegion(image.Rect(0, 0, 200, 100)))
//
//	// Publish priorities for the pending tree
//	t.UpdateTilePriorities(tiling.PendingTree, tiling.PriorityUpdate{...})
//
//	// Draw the tiles covering a destination rect
//	for c := range t.Cover(2.0, image.Rect(0, 0, 800, 600)) {
//	    draw(c.Tile, c.GeometryRect, c.TextureRect)
//	}
//
// # Coordinate Spaces
//
//   - Layer space: the unscaled logical coordinates of the layer.
//   - Content space: layer space multiplied by the contents scale; the
//     tile grid is laid out here.
//   - Destination space: the space of whoever draws the tiles, scaled
//     independently of content space.
//
// # Threading
//
// A Tiling is mutated from a single goroutine. Tiles may be shared with a
// raster pipeline running elsewhere; the tiling never mutates tile content,
// it only replaces whole tiles and publishes priorities atomically.
package tiling
