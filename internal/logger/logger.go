package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log so callers don't import it directly.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w. When debug is set, the level drops to
// Debug so request/response diagnostics become visible.
func New(w io.Writer, debug bool) *Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: debug,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that drops everything. Used as the default in
// library constructors so callers can opt out of wiring one.
func Discard() *Logger {
	l := log.NewWithOptions(io.Discard, log.Options{})
	l.SetLevel(log.FatalLevel + 1)
	return &Logger{Logger: l}
}
