package rrd

// update.go implements data submission to an RRD.
// Reference: https://oss.oetiker.ch/rrdtool/doc/rrdupdate.en.html

import (
	"strconv"
	"strings"
	"time"

	"github.com/rrdkit/rrd/internal/librrd"
	"github.com/rrdkit/rrd/internal/logging"
)

// LockingMode selects the file locking behavior while updating.
type LockingMode int

const (
	// LockDefault reads $RRD_LOCKING, falling back to LockTry.
	LockDefault LockingMode = iota
	// LockNone skips locking; the caller must ensure exclusive use.
	LockNone
	// LockBlock waits until the lock is available.
	LockBlock
	// LockTry fails when the file is locked elsewhere.
	LockTry
)

// UpdateOptions alters update behavior. The zero value is the librrd
// default.
type UpdateOptions struct {
	// SkipPastUpdates silently drops updates older than the last update
	// already present instead of returning an error.
	SkipPastUpdates bool

	// Locking selects the file locking mode. Requires librrd >= 1.9.0.
	Locking LockingMode
}

// bits returns the extra_flags encoding rrd_updatex_r expects: bit 0 for
// skip-past-updates, locking mode shifted into bits 7-8.
func (o UpdateOptions) bits() int {
	bits := 0
	if o.SkipPastUpdates {
		bits |= 0x01
	}
	bits |= int(o.Locking) << 7
	return bits
}

// Datum is the value for one DS at one timestamp.
type Datum struct {
	arg string
}

// UnknownDatum leaves a DS value unspecified ("U") at this timestamp.
func UnknownDatum() Datum {
	return Datum{arg: "U"}
}

// IntDatum submits an integer value.
func IntDatum(v uint64) Datum {
	return Datum{arg: strconv.FormatUint(v, 10)}
}

// FloatDatum submits a floating point value.
func FloatDatum(v float64) Datum {
	return Datum{arg: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Batch is one timestamped set of values, one per DS being updated. A
// zero Time submits with "N", letting librrd take the time from the
// system clock.
type Batch struct {
	Time   time.Time
	Values []Datum
}

// At is shorthand for a Batch at an explicit time.
func At(t time.Time, values ...Datum) Batch {
	return Batch{Time: t, Values: values}
}

// Now is shorthand for a Batch stamped by librrd's clock.
func Now(values ...Datum) Batch {
	return Batch{Values: values}
}

// UpdateAll submits data for every DS in the RRD (except COMPUTE sources,
// which never take values). Each batch must carry one datum per DS, and
// all batches must have the same arity.
//
// This corresponds to `rrdtool update` without --template.
func UpdateAll(filename string, opts UpdateOptions, batches []Batch) error {
	args, err := batchArgs(batches, -1)
	if err != nil {
		return err
	}

	logf().Debugf(logging.NSUpdate+"file=%s extra_flags=%#02x args=%v", filename, opts.bits(), args)

	return librrd.Update(filename, "", opts.bits(), args)
}

// Update submits data for only the named data sources; the rest receive
// unknown values at the given timestamps. COMPUTE sources must not be
// named. Each batch must carry exactly one datum per name.
//
// This corresponds to `rrdtool update` with --template.
func Update(filename string, dsNames []string, opts UpdateOptions, batches []Batch) error {
	template := strings.Join(dsNames, ":")
	args, err := batchArgs(batches, len(dsNames))
	if err != nil {
		return err
	}

	logf().Debugf(logging.NSUpdate+"file=%s template=%q extra_flags=%#02x args=%v", filename, template, opts.bits(), args)

	return librrd.Update(filename, template, opts.bits(), args)
}

// batchArgs renders batches into "<ts>:<v>:<v>..." argument strings,
// checking that every batch matches expected arity (or, when expected is
// negative, the arity of the first batch).
func batchArgs(batches []Batch, expected int) ([]string, error) {
	args := make([]string, 0, len(batches))
	for _, b := range batches {
		if expected < 0 {
			expected = len(b.Values)
		}
		if len(b.Values) != expected {
			return nil, invalidArg("batch sizes don't match: want %d values, got %d", expected, len(b.Values))
		}

		var sb strings.Builder
		if b.Time.IsZero() {
			sb.WriteByte('N')
		} else {
			sb.WriteString(strconv.FormatInt(b.Time.Unix(), 10))
		}
		for _, d := range b.Values {
			sb.WriteByte(':')
			if d.arg == "" {
				// zero-value Datum behaves like UnknownDatum
				sb.WriteByte('U')
			} else {
				sb.WriteString(d.arg)
			}
		}
		args = append(args, sb.String())
	}
	return args, nil
}
