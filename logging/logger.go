// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a contextual RunLogger carrying the
// component, thread and run identifiers of the work being logged.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger defines the minimal logging interface for AgentWire. Args are
// alternating key/value pairs as understood by slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewSlogLogger builds a Logger writing to stderr at the given level using
// the requested format ("json" or "text", defaulting to json).
func NewSlogLogger(level, format string) Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return NewSlogAdapter(slog.New(handler))
}

// ParseLevel maps a user supplied level string to a slog.Level, defaulting
// to info for unknown values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NoOpLogger discards all log messages. Useful for testing or when logging
// is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// RunLogger decorates a Logger with the identifiers of the run being served.
// Copies are cheap; derive one per run via WithRun.
type RunLogger struct {
	inner     Logger
	component string
	threadID  string
	runID     string
}

// NewRunLogger wraps inner with a component label.
func NewRunLogger(inner Logger, component string) *RunLogger {
	if inner == nil {
		inner = NoOpLogger{}
	}
	return &RunLogger{inner: inner, component: component}
}

// WithRun returns a copy scoped to the given thread and run identifiers.
func (l *RunLogger) WithRun(threadID, runID string) *RunLogger {
	nl := *l
	nl.threadID = threadID
	nl.runID = runID
	return &nl
}

func (l *RunLogger) attrs(args []any) []any {
	out := make([]any, 0, len(args)+6)
	if l.component != "" {
		out = append(out, "component", l.component)
	}
	if l.threadID != "" {
		out = append(out, "thread_id", l.threadID)
	}
	if l.runID != "" {
		out = append(out, "run_id", l.runID)
	}
	return append(out, args...)
}

// Debug logs a debug message with run attributes attached.
func (l *RunLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, l.attrs(args)...) }

// Info logs an informational message with run attributes attached.
func (l *RunLogger) Info(msg string, args ...any) { l.inner.Info(msg, l.attrs(args)...) }

// Warn logs a warning message with run attributes attached.
func (l *RunLogger) Warn(msg string, args ...any) { l.inner.Warn(msg, l.attrs(args)...) }

// Error logs an error message with run attributes attached.
func (l *RunLogger) Error(msg string, args ...any) { l.inner.Error(msg, l.attrs(args)...) }

// LogGenerateCall records latency and outcome of one generation call on l.
func LogGenerateCall(l Logger, dur time.Duration, err error) {
	if err != nil {
		l.Error("generation call failed", "duration", dur, "error", err.Error())
		return
	}
	l.Info("generation call completed", "duration", dur)
}

// LogRunCompleted records the terminal outcome of a run.
func (l *RunLogger) LogRunCompleted(events int, dur time.Duration, err error) {
	if err != nil {
		l.Error("run failed", "events", events, "duration", dur, "error", err.Error())
		return
	}
	l.Info("run completed", "events", events, "duration", dur)
}
