package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/tiling"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - visible tiles
	colorYellow = lipgloss.Color("220") // Amber - approaching tiles
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - labels
	colorDim    = lipgloss.Color("240") // Dim gray - empty cells
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim   = lipgloss.NewStyle().Foreground(colorDim)
	styleKey   = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleVisible = lipgloss.NewStyle().Foreground(colorGreen)
	styleNear    = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Cells
// =============================================================================

const (
	cellEmpty   = "·"
	cellTile    = "■"
	cellVisible = "●"
	cellNear    = "◆"

	// maxMapColumns bounds the width of printed tile maps.
	maxMapColumns = 96
	maxMapRows    = 64
)

// =============================================================================
// Output helpers
// =============================================================================

// printTitle prints a heading line.
func printTitle(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf(format, args...)))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printDetail prints a dim indented line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// cellFor picks the map glyph for a tile.
func cellFor(tile *tiling.Tile, tree tiling.Tree) string {
	if tile == nil {
		return styleDim.Render(cellEmpty)
	}
	p := tile.Priority(tree)
	switch {
	case !p.Live:
		return cellTile
	case p.DistanceToVisible == 0:
		return styleVisible.Render(cellVisible)
	case p.TimeToVisible < 1:
		return styleNear.Render(cellNear)
	default:
		return cellTile
	}
}

// renderTileMap draws one glyph per grid cell, row by row. Large grids are
// cropped to the top-left corner.
func renderTileMap(t *tiling.Tiling, tree tiling.Tree) string {
	cols := min(t.NumTilesX(), maxMapColumns)
	rows := min(t.NumTilesY(), maxMapRows)

	var b strings.Builder
	for j := range rows {
		for i := range cols {
			b.WriteString(cellFor(t.TileAt(i, j), tree))
		}
		if cols < t.NumTilesX() {
			b.WriteString(styleDim.Render(" …"))
		}
		b.WriteByte('\n')
	}
	if rows < t.NumTilesY() {
		b.WriteString(styleDim.Render(fmt.Sprintf("… %d more rows", t.NumTilesY()-rows)))
		b.WriteByte('\n')
	}
	return b.String()
}

// formatSize formats a size as WxH.
func formatSize(x, y int) string {
	return fmt.Sprintf("%dx%d", x, y)
}

// formatSeconds formats a time to visible, which may be infinite.
func formatSeconds(s float64) string {
	if s > 1e9 {
		return "never"
	}
	return fmt.Sprintf("%.2fs", s)
}
