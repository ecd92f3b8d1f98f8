// Package logging builds the leveled console logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

const prefix = "tasklist"

// ParseLevel maps a config string to a log level. Unknown values mean warn.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// New returns a text logger writing to w.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger { return New(io.Discard, "error") }

// Open returns a logger for the given file, or for fallback when path is empty.
// The returned close func is always non-nil.
func Open(path, level string, fallback io.Writer) (*log.Logger, func() error, error) {
	if path == "" {
		return New(fallback, level), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := log.NewWithOptions(f, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return l, f.Close, nil
}
