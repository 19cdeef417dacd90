package rrd

// dump.go implements XML export and import of whole RRD files.
// References:
//   - https://oss.oetiker.ch/rrdtool/doc/rrddump.en.html
//   - https://oss.oetiker.ch/rrdtool/doc/rrdrestore.en.html

import (
	"github.com/rrdkit/rrd/internal/librrd"
	"github.com/rrdkit/rrd/internal/logging"
)

// Dump writes the contents of the RRD at filename to outPath as portable
// XML. An outPath of "-" writes to standard output.
func Dump(filename, outPath string) error {
	logf().Debugf(logging.NSDump+"file=%s out=%s", filename, outPath)

	return librrd.Dump(filename, outPath)
}

// RestoreOptions are the optional arguments to Restore.
type RestoreOptions struct {
	// RangeCheck clamps imported values to the min/max bounds of their
	// data source.
	RangeCheck bool
	// ForceOverwrite replaces an existing destination file.
	ForceOverwrite bool
}

// Restore builds a fresh RRD at filename from XML previously produced by
// Dump. An xmlPath of "-" reads from standard input.
func Restore(xmlPath, filename string, opts *RestoreOptions) error {
	// rrd_restore parses argv with getopt, command word included.
	args := []string{"restore"}
	if opts != nil {
		if opts.RangeCheck {
			args = append(args, "--range-check")
		}
		if opts.ForceOverwrite {
			args = append(args, "--force-overwrite")
		}
	}
	args = append(args, xmlPath, filename)

	logf().Debugf(logging.NSDump+"restore args=%v", args)

	return librrd.Restore(args)
}
