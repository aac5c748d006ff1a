// Package log provides a minimal internal logging library with no
// external dependencies: a leveled, package-level logger used by the
// core stages to report skip decisions and by the CLI to wire a
// verbose flag.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents the severity level of a log message.
type Level int

const (
	// DebugLevel is for detailed debugging information.
	DebugLevel Level = iota
	// InfoLevel is for general informational messages.
	InfoLevel
)

// String returns the string representation of a log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

type logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

var std = &logger{
	out:   os.Stderr,
	level: InfoLevel,
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.out = w
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

func (l *logger) log(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(l.out, "[%s] [%s] %s\n", timestamp, level.String(), msg)
}

// Debug logs a debug message using the default logger.
func Debug(msg string) {
	std.log(DebugLevel, msg)
}

// Debugf logs a formatted debug message using the default logger.
func Debugf(format string, args ...interface{}) {
	std.log(DebugLevel, fmt.Sprintf(format, args...))
}

// Info logs an info message using the default logger.
func Info(msg string) {
	std.log(InfoLevel, msg)
}

// Infof logs a formatted info message using the default logger.
func Infof(format string, args ...interface{}) {
	std.log(InfoLevel, fmt.Sprintf(format, args...))
}
