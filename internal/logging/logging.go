// Package logging provides a leveled logger on top of the standard log
// package.
package logging

import (
	"io"
	"log"
	"strings"
)

// Level represents the logging level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name case-insensitively. Unknown names map to info.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes messages at or above its level.
type Logger struct {
	level Level
	out   *log.Logger
}

// New creates a logger writing to the standard logger's output.
func New(level string) *Logger {
	return &Logger{level: ParseLevel(level), out: log.Default()}
}

// NewWriter creates a logger writing to w with standard flags.
func NewWriter(level string, w io.Writer) *Logger {
	return &Logger{level: ParseLevel(level), out: log.New(w, "", log.LstdFlags)}
}

// Level returns the configured level.
func (l *Logger) Level() Level { return l.level }

func (l *Logger) logf(level Level, prefix, format string, v ...any) {
	if level < l.level {
		return
	}
	l.out.Printf(prefix+format, v...)
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, "[DEBUG] ", format, v...) }

// Infof logs an info message.
func (l *Logger) Infof(format string, v ...any) { l.logf(LevelInfo, "[INFO] ", format, v...) }

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, v ...any) { l.logf(LevelWarn, "[WARN] ", format, v...) }

// Errorf logs an error message.
func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, "[ERROR] ", format, v...) }

// Fatalf logs an error message and exits.
func (l *Logger) Fatalf(format string, v ...any) {
	l.out.Fatalf("[FATAL] "+format, v...)
}
