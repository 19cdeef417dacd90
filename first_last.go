package rrd

// first_last.go implements the timestamp queries rrd_first, rrd_last, and
// rrd_lastupdate.

import (
	"time"

	"github.com/rrdkit/rrd/internal/librrd"
	"github.com/rrdkit/rrd/internal/logging"
)

// First returns the timestamp of the first data sample in the RRA at
// rraIndex (counted in file order, starting at 0).
func First(filename string, rraIndex int) (time.Time, error) {
	if rraIndex < 0 {
		return time.Time{}, invalidArg("rra index must not be negative, got %d", rraIndex)
	}

	logf().Debugf(logging.NSInfo+"first file=%s rra=%d", filename, rraIndex)

	ts, err := librrd.First(filename, rraIndex)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0).UTC(), nil
}

// Last returns the timestamp of the most recent update applied to the
// RRD at filename.
func Last(filename string) (time.Time, error) {
	logf().Debugf(logging.NSInfo+"last file=%s", filename)

	ts, err := librrd.Last(filename)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0).UTC(), nil
}

// LastUpdateValues is the result of LastUpdate: the time of the most
// recent update and the raw value each DS received from it, keyed by DS
// name. Values are the unconsolidated strings as stored by librrd;
// unknown values appear as "U" or "UNKN" depending on the librrd version.
type LastUpdateValues struct {
	Time   time.Time
	Values map[string]string
}

// LastUpdate reports the most recent update time together with the value
// each data source was last given.
func LastUpdate(filename string) (*LastUpdateValues, error) {
	logf().Debugf(logging.NSInfo+"lastupdate file=%s", filename)

	ts, names, values, err := librrd.LastUpdate(filename)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(names))
	for i, name := range names {
		m[name] = values[i]
	}
	return &LastUpdateValues{Time: time.Unix(ts, 0).UTC(), Values: m}, nil
}
