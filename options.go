package tiling

// TilingOption configures a Tiling during creation.
//
// Example:
//
//	// One-texel border, host client attached
//	t := tiling.New(1.0, tiling.WithClient(host))
//
//	// Borderless tiles classified as the ideal resolution
//	t := tiling.New(2.0, tiling.WithBorderTexels(0), tiling.WithResolution(tiling.HighResolution))
type TilingOption func(*tilingOptions)

// tilingOptions holds optional configuration for Tiling creation.
type tilingOptions struct {
	client          Client
	borderTexels    int
	inflationMargin int
	mapper          RectMapper
	resolution      Resolution
}

// defaultOptions returns the default tiling options.
func defaultOptions() tilingOptions {
	return tilingOptions{
		borderTexels:    1,
		inflationMargin: MaxDistanceInContentSpace,
		mapper:          ClippedRectMapper{},
		resolution:      NonIdealResolution,
	}
}

// WithClient sets the host client used to create tiles, size them and
// rebase their backing.
func WithClient(c Client) TilingOption {
	return func(o *tilingOptions) {
		o.client = c
	}
}

// WithBorderTexels sets the number of texels shared between neighbouring
// tiles. The default is one.
func WithBorderTexels(n int) TilingOption {
	return func(o *tilingOptions) {
		o.borderTexels = max(n, 0)
	}
}

// WithInflationMargin sets how far, in content pixels, the viewport is
// inflated when deciding which tiles get live priorities.
// The default is MaxDistanceInContentSpace.
func WithInflationMargin(n int) TilingOption {
	return func(o *tilingOptions) {
		o.inflationMargin = max(n, 0)
	}
}

// WithRectMapper replaces the mapper used for non-translation screen
// transforms during priority updates.
func WithRectMapper(m RectMapper) TilingOption {
	return func(o *tilingOptions) {
		if m != nil {
			o.mapper = m
		}
	}
}

// WithResolution sets the initial resolution classification.
func WithResolution(r Resolution) TilingOption {
	return func(o *tilingOptions) {
		o.resolution = r
	}
}
