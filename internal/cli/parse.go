package cli

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/gogpu/tiling"
	"github.com/gogpu/tiling/host"
	"github.com/gogpu/tiling/internal/config"
)

// parseRect parses "x,y,w,h" into a rectangle.
func parseRect(s string) (image.Rectangle, error) {
	v, err := parseInts(s, 4)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("parse rect %q: %w", s, err)
	}
	if v[2] < 0 || v[3] < 0 {
		return image.Rectangle{}, fmt.Errorf("parse rect %q: negative size", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// parseVector parses "x,y" into two floats.
func parseVector(s string) (x, y float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("parse vector %q: want 2 components, got %d", s, len(parts))
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("parse vector %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("parse vector %q: %w", s, err)
	}
	return x, y, nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(parts))
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// buildTiling creates a host client and a tiling laid out over the
// configured layer.
func buildTiling(cfg *config.Config) (*tiling.Tiling, *host.Client) {
	client := cfg.NewClient()
	opts := append(cfg.TilingOptions(), tiling.WithClient(client))
	t := tiling.New(cfg.Tiling.ContentsScale, opts...)
	t.SetLayerBounds(cfg.Layer.Point())
	return t, client
}
