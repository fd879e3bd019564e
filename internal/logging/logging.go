package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init configures the global slog default. Verbose enables debug records.
// If w is nil, os.Stderr is used so progress lines never mix with rendered
// output on stdout.
func Init(verbose bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// New returns a logger with a "component" attribute for module-scoped logging.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
