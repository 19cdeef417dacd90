// Package compression provides the codecs used for archived RRD dumps.
//
// XML dumps compress extremely well and archival jobs keep many of them,
// so rrddump and rrdrestore support a handful of codecs selected by file
// extension.
package compression

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type represents a compression codec.
type Type uint8

const (
	// None stores the dump uncompressed.
	None Type = iota

	// Gzip is the most portable choice; any rrdtool user can unpack it.
	Gzip

	// Zstd gives the best ratio/speed trade-off.
	Zstd

	// Snappy favors speed over ratio.
	Snappy

	// LZ4 uses the LZ4 frame format.
	LZ4
)

// String returns the human-readable name of the codec.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Snappy:
		return "snappy"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// FromPath infers the codec from a file extension: .gz, .zst, .sz, .lz4.
// Anything else means None.
func FromPath(path string) Type {
	switch filepath.Ext(path) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".sz":
		return Snappy
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// Compress compresses data with the given codec.
func Compress(t Type, data []byte) ([]byte, error) {
	switch t {
	case None:
		return data, nil

	case Gzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return buf.Bytes(), nil

	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil

	case Snappy:
		return snappy.Encode(nil, data), nil

	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported codec %s", t)
	}
}

// Decompress reverses Compress for the given codec.
func Decompress(t Type, data []byte) ([]byte, error) {
	switch t {
	case None:
		return data, nil

	case Gzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return out, nil

	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return out, nil

	case Snappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("snappy: %w", err)
		}
		return out, nil

	case LZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported codec %s", t)
	}
}
