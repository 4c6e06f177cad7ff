// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	level, err := logging.ParseLevel(name) // debug, info, warn, error
//	logging.Setup(os.Stderr, level)
//
// The CLI takes the level name from --log-level, STOCKROOM_LOG_LEVEL, or
// log_level in config.yaml, in that order.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// DefaultLevel keeps command output free of informational noise.
const DefaultLevel = slog.LevelWarn

// Setup installs a tint logger on w at level as the slog default and
// returns it.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	logger := New(w, level)
	slog.SetDefault(logger)
	return logger
}

// New returns a tint logger writing to w. Color is disabled unless w is
// stderr, so captured output stays plain.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
		NoColor:    w != os.Stderr,
	}))
}

// ParseLevel maps debug, info, warn, or error to a slog level.
// An empty string yields DefaultLevel.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return DefaultLevel, fmt.Errorf("unknown log level %q", s)
	}
}
