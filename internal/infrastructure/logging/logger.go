// Package logging provides structured logging utilities.
//
// Console logs look like:
//
//	[INFO] [allocator] [14:03:07] partition complete groups=3 variance_pct=0.42
//
// Set observability.logging.format to "json" for machine-readable output.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/eshaffer321/asset-divider/internal/infrastructure/config"
)

// NewLogger creates a structured logger writing to stderr, keeping stdout
// free for command output.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	return NewLoggerTo(os.Stderr, cfg)
}

// NewLoggerTo creates a logger writing to w.
func NewLoggerTo(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = NewConsoleHandler(w, opts)
	}
	return slog.New(handler)
}

// NewLoggerWithSystem creates a logger scoped to one component, e.g.
// "loader", "pricing" or "api".
func NewLoggerWithSystem(cfg config.LoggingConfig, system string) *slog.Logger {
	return NewLogger(cfg).With("system", system)
}

// ParseLevel maps a config string onto a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
