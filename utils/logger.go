package utils

import (
	"log/slog"
	"os"
	"strings"
)

// SetupLogger installs a JSON slog logger at the requested level as the
// process default.
func SetupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})).
		With("app", "nutrisense")
	slog.SetDefault(logger)
	return logger
}
