package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger creates a structured logger on stdout appropriate for the
// environment. Production uses JSON at info level, anything else uses
// human-readable text at debug level.
func NewLogger(env string) *slog.Logger {
	return New(env, os.Stdout)
}

// New is NewLogger with an explicit destination.
func New(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("service", "page-token-broker"))
}
