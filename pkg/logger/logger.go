package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a configured slog.Logger writing text records to stderr.
// When verbose is true, the logger emits debug-level logs; otherwise info-level.
func New(verbose bool) *slog.Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit destination. Progress lines for the
// user go to stdout, so logs are kept off it.
func NewWithWriter(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
