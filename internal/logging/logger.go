package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/christophergentle/tempcurve/internal/config"
)

// New builds the process logger: colored text in dev, JSON everywhere else.
// An unknown level falls back to info.
func New(w io.Writer, cfg config.SettingsConfig, appName string) *slog.Logger {
	level, err := ParseLevel(cfg.LogLevel)
	if cfg.AppEnv == "dev" {
		h := tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
		logger := slog.New(h).With("app", appName)
		if err != nil {
			logger.Warn("falling back to info level", "err", err)
		}
		return logger
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(h).With(
		"app", appName,
		"env", cfg.AppEnv,
	)
	if err != nil {
		logger.Warn("falling back to info level", "err", err)
	}
	return logger
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
