package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}

func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// WithDatabase replaces the default logger with one that also persists
// ERROR records through db.
func WithDatabase(db *DBHandler) {
	slog.SetDefault(slog.New(NewMultiHandler(StdoutHandler(), db)))
}
