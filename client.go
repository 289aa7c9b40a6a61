package tiling

import "image"

// TileFactory materializes tiles for a tiling.
//
// CreateTile may return nil to decline, for example when the host is out of
// memory budget. The tiling treats that as "no tile yet" and leaves the
// cell empty until a later creation pass.
type TileFactory interface {
	CreateTile(t *Tiling, contentRect image.Rectangle) *Tile
}

// TileSizePolicy decides the maximum tile size for a content size.
type TileSizePolicy interface {
	CalculateTileSize(current, contentSize image.Point) image.Point
}

// BackingRebaser is notified once per tile when a tiling is promoted, so it
// can point the tile at its own backing and release the provisional one.
type BackingRebaser interface {
	UpdatePile(t *Tile)
}

// Client is everything a Tiling needs from its host.
type Client interface {
	TileFactory
	TileSizePolicy
	BackingRebaser
}
