// Package logging is the leveled logger shared by the commands. It writes
// through the standard log package with a [LEVEL] prefix and satisfies
// life.Logger.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
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

// ParseLevel parses a string log level (case-insensitive)
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// Logger provides leveled logging
type Logger struct {
	level Level
	out   *log.Logger
}

// New creates a logger writing to w at the given level
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		level: level,
		out:   log.New(w, "", log.LstdFlags),
	}
}

// Level is the minimum level written
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) logf(level Level, tag, format string, v ...any) {
	if level >= l.level {
		l.out.Printf("["+tag+"] "+format, v...)
	}
}

// Debugf logs a debug message
func (l *Logger) Debugf(format string, v ...any) {
	l.logf(LevelDebug, "DEBUG", format, v...)
}

// Infof logs an info message
func (l *Logger) Infof(format string, v ...any) {
	l.logf(LevelInfo, "INFO", format, v...)
}

// Warnf logs a warning message
func (l *Logger) Warnf(format string, v ...any) {
	l.logf(LevelWarn, "WARN", format, v...)
}

// Errorf logs an error message
func (l *Logger) Errorf(format string, v ...any) {
	l.logf(LevelError, "ERROR", format, v...)
}

// Fatalf logs an error message and exits
func (l *Logger) Fatalf(format string, v ...any) {
	l.out.Fatalf("[FATAL] "+format, v...)
}
