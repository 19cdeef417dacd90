// End-to-end smoke test for the rrd bindings against the installed librrd.
//
// `smoketest` creates a database, feeds it samples, then exercises fetch,
// info, lastupdate, graph rendering in every format, and an XML
// dump/restore round trip. It is what the CI containers run after the
// unit tests to prove the cgo layer works against each distro's librrd.
//
// Run it:
//
// ```bash
// ./bin/smoketest -samples=500 -v
// ```
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rrdkit/rrd"
)

var (
	numSamples = flag.Int("samples", 500, "Number of samples to feed")
	stepSecs   = flag.Int("step", 10, "RRD step in seconds")
	workDir    = flag.String("dir", "", "Working directory (default: temp directory)")
	keepFiles  = flag.Bool("keep", false, "Keep generated files after the run")
	verbose    = flag.Bool("v", false, "Verbose output")
)

var seedStart = time.Unix(1_600_000_000, 0).UTC()

func main() {
	flag.Parse()

	fmt.Printf("rrd smoke test: librrd %s, %d samples at %ds step\n\n",
		rrd.Version(), *numSamples, *stepSecs)

	if *verbose {
		rrd.SetLogger(rrd.NewLogger(rrd.LogDebug))
	}

	dir := *workDir
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "rrd-smoke-*")
		if err != nil {
			fatal("temp dir: %v", err)
		}
		if !*keepFiles {
			defer os.RemoveAll(dir)
		}
	}
	fmt.Printf("working directory: %s\n", dir)

	rrdPath := filepath.Join(dir, "smoke.rrd")

	tests := []struct {
		name string
		fn   func(string) error
	}{
		{"Create", testCreate},
		{"Update", testUpdate},
		{"Last and LastUpdate", testLast},
		{"Fetch", testFetch},
		{"Info", testInfo},
		{"Graph PNG/SVG/EPS/PDF", testGraphFormats},
		{"Dump/Restore Round Trip", testDumpRestore},
	}

	passed, failed := 0, 0
	for _, t := range tests {
		start := time.Now()
		err := t.fn(rrdPath)
		elapsed := time.Since(start).Round(time.Millisecond)

		if err != nil {
			fmt.Printf("FAIL  %-28s %v (%v)\n", t.name, err, elapsed)
			failed++
		} else {
			fmt.Printf("ok    %-28s (%v)\n", t.name, elapsed)
			passed++
		}
	}

	fmt.Printf("\nresults: %d passed, %d failed\n", passed, failed)
	if failed > 0 {
		fmt.Println("SMOKE TEST FAILED")
		os.Exit(1)
	}
	fmt.Println("SMOKE TEST PASSED")
	if *keepFiles {
		fmt.Printf("files kept at: %s\n", dir)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal: "+format+"\n", args...)
	os.Exit(1)
}

func step() time.Duration {
	return time.Duration(*stepSecs) * time.Second
}

func testCreate(path string) error {
	heartbeat := uint32(2 * *stepSecs)
	dss := []rrd.DataSource{
		rrd.GaugeDS(rrd.NewDSName("watts"), heartbeat, rrd.Unbounded, rrd.Unbounded),
		rrd.CounterDS(rrd.NewDSName("bytes"), heartbeat, 0, rrd.Unbounded),
	}
	rras := make([]rrd.Archive, 0, 2)
	for _, cf := range []rrd.ConsolidationFunction{rrd.CFAverage, rrd.CFMax} {
		rra, err := rrd.NewArchive(cf, 0.5, 1, uint32(*numSamples)+10)
		if err != nil {
			return err
		}
		rras = append(rras, rra)
	}
	return rrd.Create(path, seedStart, step(), dss, rras, &rrd.CreateOptions{})
}

func testUpdate(path string) error {
	batches := make([]rrd.Batch, 0, *numSamples)
	for i := 1; i <= *numSamples; i++ {
		at := seedStart.Add(time.Duration(i) * step())
		batches = append(batches,
			rrd.At(at, rrd.FloatDatum(float64(i)), rrd.IntDatum(uint64(i)*1000)))
	}
	return rrd.UpdateAll(path, rrd.UpdateOptions{}, batches)
}

func testLast(path string) error {
	want := seedStart.Add(time.Duration(*numSamples) * step())
	last, err := rrd.Last(path)
	if err != nil {
		return err
	}
	if !last.Equal(want) {
		return fmt.Errorf("last = %v, want %v", last, want)
	}
	lu, err := rrd.LastUpdate(path)
	if err != nil {
		return err
	}
	if !lu.Time.Equal(want) {
		return fmt.Errorf("lastupdate time = %v, want %v", lu.Time, want)
	}
	if _, ok := lu.Values["watts"]; !ok {
		return fmt.Errorf("lastupdate missing ds watts: %v", lu.Values)
	}
	return nil
}

func testFetch(path string) error {
	end := seedStart.Add(time.Duration(*numSamples) * step())
	data, err := rrd.Fetch(path, rrd.CFAverage, seedStart, end, 0)
	if err != nil {
		return err
	}
	if got := data.DSNames(); len(got) != 2 {
		return fmt.Errorf("ds names = %v, want 2 entries", got)
	}
	if data.RowCount() == 0 {
		return fmt.Errorf("fetch returned no rows")
	}
	known := 0
	for _, row := range data.Rows() {
		for _, v := range row.Values() {
			if v == v { // not NaN
				known++
			}
		}
	}
	if known == 0 {
		return fmt.Errorf("fetch returned only unknown values")
	}
	return nil
}

func testInfo(path string) error {
	info, err := rrd.Info(path)
	if err != nil {
		return err
	}
	stepVal, ok := info["step"]
	if !ok {
		return fmt.Errorf("info missing step")
	}
	if got, _ := stepVal.Count(); got != uint64(*stepSecs) {
		return fmt.Errorf("info step = %d, want %d", got, *stepSecs)
	}
	if _, ok := info["ds[watts].type"]; !ok {
		return fmt.Errorf("info missing ds[watts].type")
	}
	return nil
}

var imageMagics = map[rrd.ImageFormat][]byte{
	rrd.PNG: {0x89, 'P', 'N', 'G'},
	rrd.SVG: []byte("<?xml"),
	rrd.EPS: []byte("%!PS"),
	rrd.PDF: []byte("%PDF"),
}

func testGraphFormats(path string) error {
	end := seedStart.Add(time.Duration(*numSamples) * step())
	elements := []rrd.GraphElement{
		rrd.Def{Var: rrd.MustVarName("w"), RRD: path, DS: "watts", CF: rrd.CFAverage},
		rrd.Line{Width: 1, Var: rrd.MustVarName("w"), Color: &rrd.Color{Red: 0xFF}, Legend: "watts"},
	}
	props := rrd.GraphProps{
		TimeRange: rrd.TimeRange{Start: seedStart, End: end},
		Labels:    rrd.Labels{Title: "smoke"},
	}
	for format, magic := range imageMagics {
		image, md, err := rrd.Graph(format, props, elements)
		if err != nil {
			return fmt.Errorf("format %v: %w", format, err)
		}
		if !bytes.HasPrefix(image, magic) {
			return fmt.Errorf("format %v: image does not start with %q", format, magic)
		}
		if md.ImageWidth == 0 || md.ImageHeight == 0 {
			return fmt.Errorf("format %v: zero image dimensions", format)
		}
	}
	return nil
}

func testDumpRestore(path string) error {
	dir := filepath.Dir(path)
	xmlPath := filepath.Join(dir, "smoke.xml")
	restored := filepath.Join(dir, "restored.rrd")

	if err := rrd.Dump(path, xmlPath); err != nil {
		return err
	}
	if err := rrd.Restore(xmlPath, restored, &rrd.RestoreOptions{ForceOverwrite: true}); err != nil {
		return err
	}

	origLast, err := rrd.Last(path)
	if err != nil {
		return err
	}
	restLast, err := rrd.Last(restored)
	if err != nil {
		return err
	}
	if !origLast.Equal(restLast) {
		return fmt.Errorf("restored last = %v, want %v", restLast, origLast)
	}
	return nil
}
