// Package logging provides structured logging setup for taxrank.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"
)

// Setup initializes the default slog logger writing to w.
// Terminals get human-readable text; anything else gets JSON.
// Verbose lowers the level to debug. Every record carries a run_id.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler).With("run_id", uuid.NewString())
	slog.SetDefault(logger)
	return logger
}

// isTerminal returns true if w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
