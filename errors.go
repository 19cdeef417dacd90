package rrd

// errors.go implements the error vocabulary shared by all operations.

import (
	"errors"
	"fmt"

	"github.com/rrdkit/rrd/internal/librrd"
)

// LibError carries an error message produced by librrd itself. Use
// errors.As to recover the raw message.
type LibError = librrd.Error

// ErrNulByte is returned when a string destined for librrd contains a NUL
// byte, which cannot be represented in a C string.
var ErrNulByte = librrd.ErrNulByte

// ErrInvalidArgument is the sentinel wrapped by all argument validation
// failures detected before calling into librrd.
var ErrInvalidArgument = errors.New("rrd: invalid argument")

// invalidArg returns an error wrapping ErrInvalidArgument with a reason.
func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// IsLibError reports whether err originated inside librrd (as opposed to
// argument validation or marshaling on the Go side).
func IsLibError(err error) bool {
	var le *LibError
	return errors.As(err, &le)
}
