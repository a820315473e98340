package main

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// newLogger returns a structured slog.Logger at the given level. When
// stdout is a terminal it uses a human-readable text handler; otherwise
// (piped, redirected, or running under CI) it emits JSON, matching how
// automation tooling typically wants to consume this CLI's output.
func newLogger(level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
