package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON slog logger on stdout as the process default.
// main replaces it with a MultiHandler once the database is reachable.
func Setup() *slog.Logger {
	logger := slog.New(StdoutHandler())
	slog.SetDefault(logger)
	return logger
}

func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
