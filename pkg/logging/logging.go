// Package logging constructs the service logger: structured JSON output
// with sensitive-field redaction applied to all log context.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Config holds logger settings.
type Config struct {
	Level string `toml:"level"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Level string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.Level == "" {
		c.Level = "info"
	}
	if env != nil && env.Level != "" {
		if v := os.Getenv(env.Level); v != "" {
			c.Level = v
		}
	}
	if _, err := parseLevel(c.Level); err != nil {
		return err
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
}

// New creates a JSON logger writing to w at the configured level, wrapped
// with sensitive-field redaction.
func New(cfg *Config, w io.Writer) *slog.Logger {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewRedactingHandler(handler))
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
}
