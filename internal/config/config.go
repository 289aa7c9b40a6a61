// Package config handles configuration loading for tilingctl.
package config

import (
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/tiling"
	"github.com/gogpu/tiling/host"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the tilingctl configuration.
type Config struct {
	Host     HostConfig     `yaml:"host"`
	Tiling   TilingConfig   `yaml:"tiling"`
	Layer    SizeConfig     `yaml:"layer"`
	Viewport SizeConfig     `yaml:"viewport"`
	Simulate SimulateConfig `yaml:"simulate"`
}

// HostConfig contains tile sizing and creation limits.
type HostConfig struct {
	DefaultTileSize     int `yaml:"default_tile_size"`
	MaxUntiledLayerSize int `yaml:"max_untiled_layer_size"`
	MaxTextureSize      int `yaml:"max_texture_size"`
	TileBudget          int `yaml:"tile_budget"`
}

// TilingConfig contains the tiling parameters.
type TilingConfig struct {
	ContentsScale   float64 `yaml:"contents_scale"`
	BorderTexels    *int    `yaml:"border_texels"`
	InflationMargin int     `yaml:"inflation_margin"`
	Resolution      string  `yaml:"resolution"`
}

// SizeConfig is a width and height in layer pixels.
type SizeConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Point returns the size as an image.Point.
func (s SizeConfig) Point() image.Point {
	return image.Pt(s.Width, s.Height)
}

// SimulateConfig contains the scroll simulation settings.
type SimulateConfig struct {
	Frames        int           `yaml:"frames"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	VelocityX     float64       `yaml:"velocity_x"`
	VelocityY     float64       `yaml:"velocity_y"`
}

// Load reads configuration from a YAML file. An empty path returns the
// default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	border := 1
	return &Config{
		Host: HostConfig{
			DefaultTileSize:     256,
			MaxUntiledLayerSize: 512,
			MaxTextureSize:      4096,
		},
		Tiling: TilingConfig{
			ContentsScale:   1,
			BorderTexels:    &border,
			InflationMargin: tiling.MaxDistanceInContentSpace,
			Resolution:      tiling.HighResolution.String(),
		},
		Layer:    SizeConfig{Width: 1024, Height: 4096},
		Viewport: SizeConfig{Width: 800, Height: 600},
		Simulate: SimulateConfig{
			Frames:        10,
			FrameInterval: 16 * time.Millisecond,
			VelocityY:     600,
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Host.DefaultTileSize == 0 {
		cfg.Host.DefaultTileSize = defaults.Host.DefaultTileSize
	}
	if cfg.Host.MaxUntiledLayerSize == 0 {
		cfg.Host.MaxUntiledLayerSize = defaults.Host.MaxUntiledLayerSize
	}
	if cfg.Host.MaxTextureSize == 0 {
		cfg.Host.MaxTextureSize = defaults.Host.MaxTextureSize
	}
	if cfg.Tiling.ContentsScale == 0 {
		cfg.Tiling.ContentsScale = defaults.Tiling.ContentsScale
	}
	if cfg.Tiling.BorderTexels == nil {
		cfg.Tiling.BorderTexels = defaults.Tiling.BorderTexels
	}
	if cfg.Tiling.InflationMargin == 0 {
		cfg.Tiling.InflationMargin = defaults.Tiling.InflationMargin
	}
	if cfg.Tiling.Resolution == "" {
		cfg.Tiling.Resolution = defaults.Tiling.Resolution
	}
	if cfg.Layer == (SizeConfig{}) {
		cfg.Layer = defaults.Layer
	}
	if cfg.Viewport == (SizeConfig{}) {
		cfg.Viewport = defaults.Viewport
	}
	if cfg.Simulate.Frames == 0 {
		cfg.Simulate.Frames = defaults.Simulate.Frames
	}
	if cfg.Simulate.FrameInterval == 0 {
		cfg.Simulate.FrameInterval = defaults.Simulate.FrameInterval
	}
}

// Validate checks that every value is usable. Errors wrap ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case c.Host.DefaultTileSize <= 0:
		return fmt.Errorf("%w: host.default_tile_size must be positive, got %d", ErrInvalid, c.Host.DefaultTileSize)
	case c.Host.MaxUntiledLayerSize <= 0:
		return fmt.Errorf("%w: host.max_untiled_layer_size must be positive, got %d", ErrInvalid, c.Host.MaxUntiledLayerSize)
	case c.Host.MaxTextureSize < c.Host.DefaultTileSize:
		return fmt.Errorf("%w: host.max_texture_size %d is below the default tile size %d",
			ErrInvalid, c.Host.MaxTextureSize, c.Host.DefaultTileSize)
	case c.Host.TileBudget < 0:
		return fmt.Errorf("%w: host.tile_budget must not be negative, got %d", ErrInvalid, c.Host.TileBudget)
	case !(c.Tiling.ContentsScale > 0):
		return fmt.Errorf("%w: tiling.contents_scale must be positive, got %v", ErrInvalid, c.Tiling.ContentsScale)
	case c.Tiling.BorderTexels != nil && *c.Tiling.BorderTexels < 0:
		return fmt.Errorf("%w: tiling.border_texels must not be negative, got %d", ErrInvalid, *c.Tiling.BorderTexels)
	case c.Tiling.BorderTexels != nil && 2*(*c.Tiling.BorderTexels) >= c.Host.DefaultTileSize:
		return fmt.Errorf("%w: tiling.border_texels %d leaves no room in %d texel tiles",
			ErrInvalid, *c.Tiling.BorderTexels, c.Host.DefaultTileSize)
	case c.Tiling.InflationMargin < 0:
		return fmt.Errorf("%w: tiling.inflation_margin must not be negative, got %d", ErrInvalid, c.Tiling.InflationMargin)
	case c.Layer.Width < 0 || c.Layer.Height < 0:
		return fmt.Errorf("%w: layer size must not be negative, got %dx%d", ErrInvalid, c.Layer.Width, c.Layer.Height)
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport size must be positive, got %dx%d", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	case c.Simulate.Frames < 0:
		return fmt.Errorf("%w: simulate.frames must not be negative, got %d", ErrInvalid, c.Simulate.Frames)
	case c.Simulate.FrameInterval < 0:
		return fmt.Errorf("%w: simulate.frame_interval must not be negative, got %v", ErrInvalid, c.Simulate.FrameInterval)
	}
	if _, err := ParseResolution(c.Tiling.Resolution); err != nil {
		return err
	}
	return nil
}

// ParseResolution maps a resolution name to its value.
func ParseResolution(s string) (tiling.Resolution, error) {
	for _, r := range []tiling.Resolution{tiling.HighResolution, tiling.LowResolution, tiling.NonIdealResolution} {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown resolution %q", ErrInvalid, s)
}

// HostSettings returns the host sizing limits.
func (c *Config) HostSettings() host.Settings {
	return host.Settings{
		DefaultTileSize:     image.Pt(c.Host.DefaultTileSize, c.Host.DefaultTileSize),
		MaxUntiledLayerSize: image.Pt(c.Host.MaxUntiledLayerSize, c.Host.MaxUntiledLayerSize),
		MaxTextureSize:      c.Host.MaxTextureSize,
	}
}

// NewClient returns a host client configured from c.
func (c *Config) NewClient() *host.Client {
	return host.NewClient(c.HostSettings(), host.WithTileBudget(c.Host.TileBudget))
}

// TilingOptions returns the options for tiling.New. The client is not
// included.
func (c *Config) TilingOptions() []tiling.TilingOption {
	res, _ := ParseResolution(c.Tiling.Resolution)
	opts := []tiling.TilingOption{
		tiling.WithInflationMargin(c.Tiling.InflationMargin),
		tiling.WithResolution(res),
	}
	if c.Tiling.BorderTexels != nil {
		opts = append(opts, tiling.WithBorderTexels(*c.Tiling.BorderTexels))
	}
	return opts
}
