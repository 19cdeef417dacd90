// Package testutil provides helpers shared by the integration tests and
// the stress tools: temp RRD paths, seeded databases with known contents,
// and dump fingerprints for comparing two RRD files structurally.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/rrdkit/rrd"
)

// TempRRD returns a path for an RRD file inside a test-scoped temp
// directory. The file is not created.
func TempRRD(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// SeedStart is the creation start time used by Seed. Updates begin one
// step after it.
var SeedStart = time.Unix(1_600_000_000, 0).UTC()

// Seed creates an RRD at path with one GAUGE DS named "watts" and an
// AVERAGE RRA of 100 rows at a 10 second step, then applies n updates of
// value 100*i at 10 second intervals.
func Seed(t *testing.T, path string, n int) {
	t.Helper()

	ds := rrd.GaugeDS(rrd.NewDSName("watts"), 120, rrd.Unbounded, rrd.Unbounded)
	rra, err := rrd.NewArchive(rrd.CFAverage, 0.5, 1, 100)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if err := rrd.Create(path, SeedStart, 10*time.Second, []rrd.DataSource{ds}, []rrd.Archive{rra}, nil); err != nil {
		t.Fatalf("create %s: %v", path, err)
	}

	batches := make([]rrd.Batch, 0, n)
	for i := 1; i <= n; i++ {
		at := SeedStart.Add(time.Duration(i) * 10 * time.Second)
		batches = append(batches, rrd.At(at, rrd.FloatDatum(float64(100*i))))
	}
	if err := rrd.UpdateAll(path, rrd.UpdateOptions{}, batches); err != nil {
		t.Fatalf("update %s: %v", path, err)
	}
}

// DumpFingerprint dumps the RRD at path to XML and returns an xxh3 hash
// of the output. Two files with identical structure and contents produce
// the same fingerprint, which is how the restore tests check round trips.
func DumpFingerprint(path string) (uint64, error) {
	xmlPath := path + ".dump.xml"
	defer os.Remove(xmlPath)

	if err := rrd.Dump(path, xmlPath); err != nil {
		return 0, err
	}
	data, err := os.ReadFile(xmlPath)
	if err != nil {
		return 0, fmt.Errorf("read dump: %w", err)
	}
	return xxh3.Hash(data), nil
}

// RequireLibrrd skips the test when the linked librrd is older than
// major.minor.
func RequireLibrrd(t *testing.T, major, minor int) {
	t.Helper()
	v := rrd.Version()
	var haveMajor, haveMinor int
	if _, err := fmt.Sscanf(v, "%d.%d", &haveMajor, &haveMinor); err != nil {
		t.Fatalf("unparseable librrd version %q", v)
	}
	if haveMajor < major || (haveMajor == major && haveMinor < minor) {
		t.Skipf("librrd %s is older than %d.%d", v, major, minor)
	}
}
