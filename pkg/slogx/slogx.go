package slogx

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Service string
	Version string
	Env     string // "development", "staging" or "production"
	Level   string // "debug", "info", "warn", "error"
	Format  string // "json" or "text"; empty picks by Env
}

// New returns a configured slog.Logger and installs it as the default.
// Development defaults to human-readable text with source locations;
// every other environment defaults to JSON.
func New(cfg Config) *slog.Logger {
	dev := strings.EqualFold(cfg.Env, "development")

	opts := &slog.HandlerOptions{
		AddSource: dev,
		Level:     parseLevel(cfg.Level),
	}

	format := strings.ToLower(cfg.Format)
	if format == "" {
		if dev {
			format = "text"
		} else {
			format = "json"
		}
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)

	slog.SetDefault(logger)
	return logger
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
