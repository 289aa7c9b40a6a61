// Package cli implements the tilingctl command-line interface.
//
// tilingctl builds a tiling from a YAML configuration and a reference host
// client, then prints what the tiling does with it.
//
// # Commands
//
//   - grid: print the tile map of a freshly laid out layer
//   - cover: print the geometry and texture rects of a destination rect
//   - simulate: scroll a viewport and print tile priorities per frame
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The same
// logger receives the tiling package's own debug output.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"

	"github.com/gogpu/tiling"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// routeTilingLogs sends the tiling package's slog output to l.
func routeTilingLogs(l *log.Logger) {
	tiling.SetLogger(slog.New(l))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
