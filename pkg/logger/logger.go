package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Logger receives aera's diagnostics.
// Implementations must not write to stdout, which carries service responses.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// Level is the minimum severity a writer logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name to a Level. Unknown names map to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type writerLogger struct {
	w   io.Writer
	min Level
	now func() time.Time
}

func (l writerLogger) write(level Level, label, msg string, obj any) {
	if l.w == nil || level < l.min {
		return
	}

	ts := l.now().Format(time.RFC3339)
	if obj == nil {
		_, _ = fmt.Fprintf(l.w, "%s %-5s %s\n", ts, label, msg)
		return
	}

	b, err := json.Marshal(obj)
	if err != nil {
		_, _ = fmt.Fprintf(l.w, "%s %-5s %s obj=%q\n", ts, label, msg, fmt.Sprintf("%+v", obj))
		return
	}
	_, _ = fmt.Fprintf(l.w, "%s %-5s %s obj=%s\n", ts, label, msg, string(b))
}

// NewWriterLogger builds a logger that writes every level to an io.Writer.
func NewWriterLogger(w io.Writer) Logger {
	return NewLeveledLogger(w, LevelDebug)
}

// NewLeveledLogger builds a logger that drops messages below min.
func NewLeveledLogger(w io.Writer, min Level) Logger {
	return writerLogger{w: w, min: min, now: time.Now}
}

func (l writerLogger) Info(msg string, obj any)  { l.write(LevelInfo, "INFO", msg, obj) }
func (l writerLogger) Warn(msg string, obj any)  { l.write(LevelWarn, "WARN", msg, obj) }
func (l writerLogger) Debug(msg string, obj any) { l.write(LevelDebug, "DEBUG", msg, obj) }
func (l writerLogger) Error(msg string, obj any) { l.write(LevelError, "ERROR", msg, obj) }

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Info(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}
