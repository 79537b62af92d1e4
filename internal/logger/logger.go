// Package logger configures log/slog for the widgetgen CLI.
//
// Logs always go to stderr so that stdout carries only command results
// (the status line or the --json document).
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Options selects the handler and level.
type Options struct {
	// Level is a level name understood by ParseLevel. Empty means warn.
	Level string

	// Verbose forces the debug level regardless of Level.
	Verbose bool

	// JSON switches to the JSON handler, matching --json output mode.
	JSON bool
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// Setup installs a logger built by New as the slog default.
func Setup(w io.Writer, opts Options) {
	slog.SetDefault(New(w, opts))
}

// ParseLevel converts a string log level to slog.Level.
// Unrecognized values default to warn, the CLI's quiet level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
