package rrd

// rrd.go implements the shared vocabulary types and library-wide plumbing.

import (
	"sync/atomic"

	"github.com/rrdkit/rrd/internal/librrd"
	"github.com/rrdkit/rrd/internal/logging"
)

// ConsolidationFunction selects how primary data points are aggregated
// into an RRA.
type ConsolidationFunction int

// The zero value is not a valid consolidation function; optional fields
// (like Def.Reduce) use it to mean "unset".
const (
	// CFAverage averages the primary data points.
	CFAverage ConsolidationFunction = iota + 1
	// CFMin keeps the smallest primary data point.
	CFMin
	// CFMax keeps the largest primary data point.
	CFMax
	// CFLast keeps the most recent primary data point.
	CFLast
)

// String returns the librrd argument spelling of the consolidation
// function, e.g. "AVERAGE".
func (cf ConsolidationFunction) String() string {
	switch cf {
	case CFAverage:
		return "AVERAGE"
	case CFMin:
		return "MIN"
	case CFMax:
		return "MAX"
	case CFLast:
		return "LAST"
	default:
		return "UNKNOWN"
	}
}

// Version returns the version of librrd this package is linked against,
// e.g. "1.9.0".
func Version() string {
	return librrd.Version()
}

// Logger is an alias for the logging.Logger interface. This allows users
// to pass their own logger implementation.
type Logger = logging.Logger

// LogLevel is an alias for the logging level type.
type LogLevel = logging.Level

// Log level constants.
const (
	LogError = logging.LevelError
	LogWarn  = logging.LevelWarn
	LogInfo  = logging.LevelInfo
	LogDebug = logging.LevelDebug
)

// NewLogger returns a stderr logger at the given level, suitable for
// SetLogger.
func NewLogger(level LogLevel) Logger {
	return logging.NewDefaultLogger(level)
}

// The package is silent by default. Operations emit one Debug line per
// librrd call carrying the marshaled argv.
var logger atomic.Pointer[Logger]

// SetLogger installs a logger for the whole package. Passing nil restores
// the silent default.
func SetLogger(l Logger) {
	l = logging.OrDiscard(l)
	logger.Store(&l)
}

func logf() Logger {
	if l := logger.Load(); l != nil {
		return *l
	}
	return logging.Discard
}
