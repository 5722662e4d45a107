package logger

import (
	"log/slog"
	"os"
)

// Config holds the logger settings.
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// DefaultConfig is the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: "json",
	}
}

// New creates a logger and installs it as the process default.
func New(cfg Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}

	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default: // "json"
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
