package observability

import (
	"io"
	"log/slog"
	"os"
)

// basic global logger, JSON to stderr. Stderr keeps log lines out of the
// TUI's alternate screen and out of piped CLI output.
var logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

func Logger() *slog.Logger {
	return logger
}

// WithComponent returns a logger tagged with the owning component.
func WithComponent(name string) *slog.Logger {
	return logger.With("component", name)
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
