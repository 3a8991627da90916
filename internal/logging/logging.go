// Package logging builds the structured debug logger. Logging is off unless a
// level is configured; user-facing output never goes through it.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the log file written next to the data file.
const FileName = "doug.log"

// ErrInvalidLevel is returned for an unknown log level name.
var ErrInvalidLevel = errors.New("invalid log level (must be debug|info|warn|error)")

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}

// New returns a text logger writing to w at the given level. An empty level
// returns a discarding logger.
func New(w io.Writer, level string) (*slog.Logger, error) {
	if level == "" {
		return Discard(), nil
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Open appends to dir/doug.log. The returned close func is always non-nil.
// An empty level opens nothing.
func Open(dir, level string) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	if level == "" {
		return Discard(), noop, nil
	}

	if _, err := ParseLevel(level); err != nil {
		return nil, noop, err
	}

	mkdirErr := os.MkdirAll(dir, 0o750)
	if mkdirErr != nil {
		return nil, noop, fmt.Errorf("creating log directory: %w", mkdirErr)
	}

	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, noop, fmt.Errorf("opening log file: %w", err)
	}

	logger, err := New(f, level)
	if err != nil {
		_ = f.Close()

		return nil, noop, err
	}

	return logger, f.Close, nil
}
