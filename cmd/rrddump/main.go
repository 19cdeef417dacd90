// Package main provides the rrddump CLI tool for archiving RRD files as
// XML, with optional compression.
//
// Usage:
//
//	rrddump --file=db.rrd --out=db.xml.zst [--sum]
//
// The output codec is inferred from the extension: .gz, .zst, .sz (snappy),
// .lz4, or none. --sum additionally prints an xxh3 hash of the
// uncompressed XML, which rrdrestore can verify after a round trip.
//
// Reference: https://oss.oetiker.ch/rrdtool/doc/rrddump.en.html
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"github.com/rrdkit/rrd"
	"github.com/rrdkit/rrd/internal/compression"
)

var (
	filePath = flag.String("file", "", "Path to the RRD file (required)")
	outPath  = flag.String("out", "", "Output path; codec inferred from extension (required)")
	printSum = flag.Bool("sum", false, "Print an xxh3 hash of the uncompressed XML")
	verbose  = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if *filePath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file and --out flags are required")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *verbose {
		rrd.SetLogger(rrd.NewLogger(rrd.LogDebug))
	}

	tmp, err := os.CreateTemp(filepath.Dir(*outPath), ".rrddump-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := rrd.Dump(*filePath, tmpPath); err != nil {
		return err
	}
	xml, err := os.ReadFile(tmpPath)
	if err != nil {
		return err
	}

	codec := compression.FromPath(*outPath)
	out, err := compression.Compress(codec, xml)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		return err
	}

	if *printSum {
		fmt.Printf("xxh3:%016x  %s\n", xxh3.Hash(xml), *outPath)
	}
	if *verbose {
		fmt.Printf("wrote %s (%s, %d -> %d bytes)\n", *outPath, codec, len(xml), len(out))
	}
	return nil
}
