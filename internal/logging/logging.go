// Package logging provides the logging interface and default
// implementations for the rrd binding.
//
// Design: four-level formatted interface (Error, Warn, Info, Debug). The
// library itself logs nothing unless the caller installs a logger; every
// operation emits one Debug line carrying the argv it hands to librrd,
// which is the single most useful thing to see when an update or graph
// call misbehaves.
//
// Log format: YYYY/MM/DD HH:MM:SS LEVEL [component] message
//
// Component namespace prefixes:
//   - [create]  — RRD creation
//   - [update]  — data submission
//   - [fetch]   — data retrieval
//   - [info]    — metadata queries
//   - [graph]   — graph rendering
//   - [dump]    — dump/restore
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
)

// Level represents the logging level.
type Level int

const (
	// LevelError logs only errors.
	LevelError Level = iota
	// LevelWarn logs warnings and errors.
	LevelWarn
	// LevelInfo logs info, warnings, and errors.
	LevelInfo
	// LevelDebug logs everything including per-call argv traces.
	LevelDebug
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger is the interface operations log through. Implementations must be
// safe for concurrent use.
type Logger interface {
	// Errorf logs a formatted error message.
	Errorf(format string, args ...any)
	// Warnf logs a formatted warning message.
	Warnf(format string, args ...any)
	// Infof logs a formatted informational message.
	Infof(format string, args ...any)
	// Debugf logs a formatted debug message.
	Debugf(format string, args ...any)
}

// DefaultLogger writes to a given output with level filtering. It is
// stateless and safe for concurrent use (log.Logger is thread-safe).
// Level is read-only after construction.
type DefaultLogger struct {
	logger *log.Logger
	level  Level
}

// NewDefaultLogger creates a logger at the given level writing to stderr.
func NewDefaultLogger(level Level) *DefaultLogger {
	return NewLogger(os.Stderr, level)
}

// NewLogger creates a logger with the specified output and level.
func NewLogger(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
	}
}

// Level returns the logging level.
func (l *DefaultLogger) Level() Level {
	return l.level
}

// Errorf implements Logger.
func (l *DefaultLogger) Errorf(format string, args ...any) {
	if l.level >= LevelError {
		_ = l.logger.Output(2, "ERROR "+fmt.Sprintf(format, args...))
	}
}

// Warnf implements Logger.
func (l *DefaultLogger) Warnf(format string, args ...any) {
	if l.level >= LevelWarn {
		_ = l.logger.Output(2, "WARN "+fmt.Sprintf(format, args...))
	}
}

// Infof implements Logger.
func (l *DefaultLogger) Infof(format string, args ...any) {
	if l.level >= LevelInfo {
		_ = l.logger.Output(2, "INFO "+fmt.Sprintf(format, args...))
	}
}

// Debugf implements Logger.
func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.level >= LevelDebug {
		_ = l.logger.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
	}
}

// Namespace prefixes for log messages.
const (
	// NSCreate is the namespace for RRD creation.
	NSCreate = "[create] "
	// NSUpdate is the namespace for data submission.
	NSUpdate = "[update] "
	// NSFetch is the namespace for data retrieval.
	NSFetch = "[fetch] "
	// NSInfo is the namespace for metadata queries.
	NSInfo = "[info] "
	// NSGraph is the namespace for graph rendering.
	NSGraph = "[graph] "
	// NSDump is the namespace for dump/restore.
	NSDump = "[dump] "
)

// IsNil reports whether the logger is nil or a typed-nil pointer wrapped in
// the interface. Calling methods on a typed-nil panics, so both cases are
// detected.
func IsNil(l Logger) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// OrDiscard returns the provided logger if it is usable, otherwise the
// no-op Discard logger. The library never logs unless asked to.
func OrDiscard(l Logger) Logger {
	if IsNil(l) {
		return Discard
	}
	return l
}
