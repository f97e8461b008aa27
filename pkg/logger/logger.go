package logger

import (
	"log/slog"
	"os"
)

// NewHandler creates the slog handler installed as the process default.
// Passing nil opts logs at info level.
func NewHandler(opts *slog.HandlerOptions) slog.Handler {
	return slog.NewJSONHandler(os.Stdout, opts)
}
