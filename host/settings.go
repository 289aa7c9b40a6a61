package host

import "image"

// tileSizeAlignment is the granularity tile sizes are rounded up to.
const tileSizeAlignment = 64

// Settings holds the tile sizing limits of a host.
type Settings struct {
	// DefaultTileSize is used for layers large in both dimensions.
	DefaultTileSize image.Point

	// MaxUntiledLayerSize is the largest layer that is still drawn with as
	// few tiles as possible.
	MaxUntiledLayerSize image.Point

	// MaxTextureSize caps every tile dimension.
	MaxTextureSize int
}

// DefaultSettings returns 256x256 default tiles, a 512x512 untiled limit and
// a 4096 texel texture cap.
func DefaultSettings() Settings {
	return Settings{
		DefaultTileSize:     image.Pt(256, 256),
		MaxUntiledLayerSize: image.Pt(512, 512),
		MaxTextureSize:      4096,
	}
}

// CalculateTileSize picks the tile size for a layer with the given content
// size.
//
// Small layers, and layers that fit in a single default tile along either
// axis, get one large tile per axis: the max untiled size clamped to the
// content and rounded up to a multiple of 64. Everything else uses the
// default tile size.
func (s Settings) CalculateTileSize(current, content image.Point) image.Point {
	anyDimensionFits := content.X <= s.DefaultTileSize.X || content.Y <= s.DefaultTileSize.Y
	anyDimensionTooLarge := content.X > s.MaxUntiledLayerSize.X || content.Y > s.MaxUntiledLayerSize.Y
	if anyDimensionTooLarge && !anyDimensionFits {
		return s.DefaultTileSize
	}

	size := image.Pt(
		max(s.MaxUntiledLayerSize.X, s.DefaultTileSize.X),
		max(s.MaxUntiledLayerSize.Y, s.DefaultTileSize.Y),
	)
	if s.MaxTextureSize > 0 {
		size.X = min(size.X, s.MaxTextureSize)
		size.Y = min(size.Y, s.MaxTextureSize)
	}
	size.X = roundUp(max(min(size.X, content.X), 1), tileSizeAlignment)
	size.Y = roundUp(max(min(size.Y, content.Y), 1), tileSizeAlignment)
	return size
}

func roundUp(v, multiple int) int {
	return (v + multiple - 1) / multiple * multiple
}
