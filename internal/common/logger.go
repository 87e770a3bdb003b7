package common

import (
	"log/slog"
	"os"
)

// NewLogger builds the JSON stderr logger every command uses. quiet wins
// over verbose.
func NewLogger(quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
