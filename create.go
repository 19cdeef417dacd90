package rrd

// create.go implements RRD creation and the DS/RRA argument builders.
// Reference: https://oss.oetiker.ch/rrdtool/doc/rrdcreate.en.html

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rrdkit/rrd/internal/librrd"
	"github.com/rrdkit/rrd/internal/logging"
)

// Unbounded marks a DataSource minimum or maximum as unrestricted (the
// "U" argument).
var Unbounded = math.NaN()

// CreateOptions holds the optional parameters to Create. The zero value
// is a usable default.
type CreateOptions struct {
	// NoOverwrite makes Create fail if the target file already exists.
	NoOverwrite bool

	// Template names an existing RRD whose structure seeds the new file.
	Template string

	// Sources lists RRD files whose data pre-fills the new file. Mapped
	// data source names (see MappedDSName) refer to these by index.
	Sources []string
}

// Create sets up a new RRD at filename with the given data sources and
// archives. start is the time of the last known update before data begins;
// step is the primary data point interval. A nil opts means defaults.
func Create(filename string, start time.Time, step time.Duration, dataSources []DataSource, archives []Archive, opts *CreateOptions) error {
	if opts == nil {
		opts = &CreateOptions{}
	}
	if len(dataSources) == 0 {
		return invalidArg("at least one data source is required")
	}
	if len(archives) == 0 {
		return invalidArg("at least one archive is required")
	}

	args := make([]string, 0, len(dataSources)+len(archives))
	for _, ds := range dataSources {
		args = append(args, ds.arg)
	}
	for _, rra := range archives {
		args = append(args, rra.argString())
	}

	logf().Debugf(logging.NSCreate+"file=%s start=%d step=%ds no_overwrite=%t template=%q sources=%v args=%v",
		filename, start.Unix(), int64(step.Seconds()), opts.NoOverwrite, opts.Template, opts.Sources, args)

	return librrd.Create(filename, uint64(step.Seconds()), start.Unix(), opts.NoOverwrite,
		opts.Sources, opts.Template, args)
}

// DataSource corresponds to one DS argument to rrdcreate. Build one with
// the typed constructors (GaugeDS, CounterDS, ComputeDS, ...).
type DataSource struct {
	arg string
}

// GaugeDS reads values as-is (temperatures, object counts). Use Unbounded
// for an unrestricted min or max.
func GaugeDS(name DSName, heartbeat uint32, min, max float64) DataSource {
	return numericDS(name, "GAUGE", heartbeat, min, max)
}

// CounterDS reads ever-increasing values and stores the rate of change,
// handling counter wraps.
func CounterDS(name DSName, heartbeat uint32, min, max float64) DataSource {
	return numericDS(name, "COUNTER", heartbeat, min, max)
}

// DCounterDS is CounterDS for floating point inputs, without wrap
// handling.
func DCounterDS(name DSName, heartbeat uint32, min, max float64) DataSource {
	return numericDS(name, "DCOUNTER", heartbeat, min, max)
}

// DeriveDS stores the rate of change without wrap handling, allowing
// decreasing values.
func DeriveDS(name DSName, heartbeat uint32, min, max float64) DataSource {
	return numericDS(name, "DERIVE", heartbeat, min, max)
}

// DDeriveDS is DeriveDS for floating point inputs.
func DDeriveDS(name DSName, heartbeat uint32, min, max float64) DataSource {
	return numericDS(name, "DDERIVE", heartbeat, min, max)
}

// AbsoluteDS reads counters that reset on every read.
func AbsoluteDS(name DSName, heartbeat uint32, min, max float64) DataSource {
	return numericDS(name, "ABSOLUTE", heartbeat, min, max)
}

// ComputeDS derives its value from other data sources via the RPN
// expression. COMPUTE sources take no values in updates.
func ComputeDS(name DSName, rpn string) DataSource {
	return DataSource{arg: fmt.Sprintf("DS:%s:COMPUTE:%s", name.name, rpn)}
}

func numericDS(name DSName, typ string, heartbeat uint32, min, max float64) DataSource {
	return DataSource{arg: fmt.Sprintf("DS:%s:%s:%d:%s:%s", name.name, typ, heartbeat, boundArg(min), boundArg(max))}
}

// boundArg renders a DS bound, mapping NaN (Unbounded) to "U".
func boundArg(v float64) string {
	if math.IsNaN(v) {
		return "U"
	}
	return fmtFloat(v)
}

// fmtFloat renders a float the way librrd's CLI front-ends do: no
// exponent, no trailing zeros.
func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DSName is the name string used in a DS argument.
type DSName struct {
	name string
}

// NewDSName names a data source that does not reference a prefill source.
func NewDSName(name string) DSName {
	return DSName{name: name}
}

// MappedDSName names a data source pre-filled from srcDSName in the
// create sources.
func MappedDSName(name, srcDSName string) DSName {
	return DSName{name: fmt.Sprintf("%s=%s", name, srcDSName)}
}

// MappedDSNameIndex is MappedDSName pinned to the source file at index.
func MappedDSNameIndex(name, srcDSName string, index uint32) DSName {
	return DSName{name: fmt.Sprintf("%s=%s[%d]", name, srcDSName, index)}
}

// Archive defines one RRA to include in a new RRD.
type Archive struct {
	consolidationFn ConsolidationFunction
	xff             float64
	steps           uint32
	rows            uint32
}

// NewArchive builds an RRA definition. xff is the fraction of an interval
// that may be unknown while still consolidating; it is documented as
// [0,1] inclusive, but rrdcreate rejects 1.0, so so do we.
func NewArchive(cf ConsolidationFunction, xff float64, steps, rows uint32) (Archive, error) {
	if !(xff >= 0 && xff < 1) {
		return Archive{}, invalidArg("xff must be in [0, 1), got %v", xff)
	}
	return Archive{consolidationFn: cf, xff: xff, steps: steps, rows: rows}, nil
}

// argString returns the RRA:... argument.
func (a Archive) argString() string {
	return fmt.Sprintf("RRA:%s:%s:%d:%d", a.consolidationFn, fmtFloat(a.xff), a.steps, a.rows)
}
