// Package logging configures the charmbracelet/log loggers used across
// mdcheck and carries the active one through a context.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // fallback for code running outside a command
var defaultLogger = sync.OnceValue(func() *log.Logger {
	return New("info")
})

// Default returns the process-wide fallback logger. It writes to stderr at
// info level.
func Default() *log.Logger {
	return defaultLogger()
}

// New creates a stderr logger at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w at level. A nil w means stderr.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// NewInteractive creates an info-level logger for user-facing command
// messages written to w.
func NewInteractive(w io.Writer) *log.Logger {
	return NewWithWriter(w, "info")
}

// ParseLevel maps a level name to a log level, case-insensitively. "warning"
// is accepted for warn; anything unknown is info.
func ParseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil || parsed == log.FatalLevel {
		return log.InfoLevel
	}
	return parsed
}
