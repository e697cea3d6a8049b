package logger

import (
	"log/slog"
	"os"
)

// SetupGlobal installs the process-wide slog handler. Called once during
// bootstrap, before anything logs.
func SetupGlobal(debug bool, showSource bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: showSource,
	})

	slog.SetDefault(slog.New(handler))
}
