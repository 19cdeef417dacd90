package rrd

// info.go implements metadata queries against an RRD.
// Reference: https://oss.oetiker.ch/rrdtool/doc/rrdinfo.en.html

import (
	"fmt"

	"github.com/rrdkit/rrd/internal/librrd"
	"github.com/rrdkit/rrd/internal/logging"
)

// InfoKind tags the payload type of an InfoValue.
type InfoKind int

const (
	// InfoFloat carries a float64 (librrd RD_I_VAL).
	InfoFloat InfoKind = iota
	// InfoCount carries a uint64 (RD_I_CNT).
	InfoCount
	// InfoString carries a string (RD_I_STR).
	InfoString
	// InfoInt carries an int32 (RD_I_INT).
	InfoInt
	// InfoBlob carries raw bytes (RD_I_BLO).
	InfoBlob
)

// InfoValue is one value in the map returned by Info (and in graph
// metadata). Exactly one payload is present, indicated by Kind.
type InfoValue struct {
	kind InfoKind
	f    float64
	c    uint64
	s    string
	i    int32
	b    []byte
}

// Kind reports which payload the value carries.
func (v InfoValue) Kind() InfoKind { return v.kind }

// Float returns the float payload, if this is an InfoFloat.
func (v InfoValue) Float() (float64, bool) { return v.f, v.kind == InfoFloat }

// Count returns the counter payload, if this is an InfoCount.
func (v InfoValue) Count() (uint64, bool) { return v.c, v.kind == InfoCount }

// Str returns the string payload, if this is an InfoString.
func (v InfoValue) Str() (string, bool) { return v.s, v.kind == InfoString }

// Int returns the int payload, if this is an InfoInt.
func (v InfoValue) Int() (int32, bool) { return v.i, v.kind == InfoInt }

// Blob returns the bytes payload, if this is an InfoBlob.
func (v InfoValue) Blob() ([]byte, bool) { return v.b, v.kind == InfoBlob }

// String renders the payload for display.
func (v InfoValue) String() string {
	switch v.kind {
	case InfoFloat:
		return fmt.Sprintf("%g", v.f)
	case InfoCount:
		return fmt.Sprintf("%d", v.c)
	case InfoString:
		return v.s
	case InfoInt:
		return fmt.Sprintf("%d", v.i)
	case InfoBlob:
		return fmt.Sprintf("<%d bytes>", len(v.b))
	default:
		return "<invalid>"
	}
}

// FloatValue builds an InfoFloat. The constructors exist mostly for
// tests and for callers that assemble expected maps.
func FloatValue(f float64) InfoValue { return InfoValue{kind: InfoFloat, f: f} }

// CountValue builds an InfoCount.
func CountValue(c uint64) InfoValue { return InfoValue{kind: InfoCount, c: c} }

// StringValue builds an InfoString.
func StringValue(s string) InfoValue { return InfoValue{kind: InfoString, s: s} }

// IntValue builds an InfoInt.
func IntValue(i int32) InfoValue { return InfoValue{kind: InfoInt, i: i} }

// BlobValue builds an InfoBlob.
func BlobValue(b []byte) InfoValue { return InfoValue{kind: InfoBlob, b: b} }

// Info returns a map of metadata about the RRD at filename. The contents
// vary with RRD structure, but generally describe each DS and RRA along
// with header fields like step and last_update.
func Info(filename string) (map[string]InfoValue, error) {
	logf().Debugf(logging.NSInfo+"file=%s", filename)

	entries, err := librrd.Info(filename)
	if err != nil {
		return nil, err
	}
	return infoMap(entries)
}

// infoMap converts the sys layer's entry list into the public map form.
func infoMap(entries []librrd.InfoEntry) (map[string]InfoValue, error) {
	m := make(map[string]InfoValue, len(entries))
	for _, e := range entries {
		switch v := e.Value.(type) {
		case float64:
			m[e.Key] = FloatValue(v)
		case uint64:
			m[e.Key] = CountValue(v)
		case string:
			m[e.Key] = StringValue(v)
		case int32:
			m[e.Key] = IntValue(v)
		case []byte:
			m[e.Key] = BlobValue(v)
		default:
			return nil, fmt.Errorf("rrd: unexpected info payload %T for key %q", e.Value, e.Key)
		}
	}
	return m, nil
}
