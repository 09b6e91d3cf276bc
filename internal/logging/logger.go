package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"chtagger/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Writer receives every record. Nil means stderr.
	Writer io.Writer
}

// New builds a console or JSON logger writing to opts.Writer. Debug level
// also records the calling file and line.
func New(opts Options) (*slog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := parseLevel(opts.Level)
	withSource := level <= slog.LevelDebug

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		return slog.New(newConsoleHandler(w, level, withSource)), nil
	case "json":
		return slog.New(newJSONHandler(w, level, withSource)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig builds the logger described by cfg's [logging] section. Logs
// go to w so stdout stays reserved for reports.
func NewFromConfig(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Writer: w})
	}
	return New(Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Writer: w})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
