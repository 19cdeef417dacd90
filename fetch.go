package rrd

// fetch.go implements data retrieval from an RRD.
// Reference: https://oss.oetiker.ch/rrdtool/doc/rrdfetch.en.html

import (
	"time"

	"github.com/rrdkit/rrd/internal/librrd"
	"github.com/rrdkit/rrd/internal/logging"
)

// Fetch reads data from filename between start and end, consolidated with
// cf at the given resolution. librrd may widen the range and coarsen the
// resolution to match an existing RRA; the returned Data reflects the
// adjusted values.
func Fetch(filename string, cf ConsolidationFunction, start, end time.Time, resolution time.Duration) (*Data, error) {
	if resolution < time.Second {
		// Finest available resolution.
		resolution = time.Second
	}

	logf().Debugf(logging.NSFetch+"file=%s cf=%s start=%d end=%d resolution=%ds",
		filename, cf, start.Unix(), end.Unix(), int64(resolution.Seconds()))

	res, err := librrd.Fetch(filename, cf.String(), start.Unix(), end.Unix(), uint64(resolution.Seconds()))
	if err != nil {
		return nil, err
	}

	// The first row's datum covers the interval that ends one step after
	// the adjusted start, so the row timestamps begin one step in.
	step := time.Duration(res.Step) * time.Second
	return newData(
		time.Unix(res.Start+int64(res.Step), 0).UTC(),
		time.Unix(res.End, 0).UTC(),
		step,
		res.Names,
		res.Values,
	), nil
}
