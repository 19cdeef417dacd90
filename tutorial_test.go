package rrd_test

// Walks the steps of the rrdtool tutorial against a real librrd:
// https://oss.oetiker.ch/rrdtool/tut/rrdtutorial.en.html

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/rrdkit/rrd"
	"github.com/rrdkit/rrd/internal/testutil"
)

var tutorialStart = time.Unix(920804400, 0).UTC()

func tutorialRRD(t *testing.T) string {
	t.Helper()
	path := testutil.TempRRD(t, "speed.rrd")

	ds := rrd.CounterDS(rrd.NewDSName("speed"), 600, rrd.Unbounded, rrd.Unbounded)
	var rras []rrd.Archive
	for _, a := range []struct{ steps, rows uint32 }{{1, 24}, {6, 10}} {
		rra, err := rrd.NewArchive(rrd.CFAverage, 0.5, a.steps, a.rows)
		if err != nil {
			t.Fatal(err)
		}
		rras = append(rras, rra)
	}
	opts := &rrd.CreateOptions{NoOverwrite: true}
	if err := rrd.Create(path, tutorialStart, 300*time.Second, []rrd.DataSource{ds}, rras, opts); err != nil {
		t.Fatal(err)
	}

	samples := []struct {
		ts    int64
		count uint64
	}{
		{920804700, 12345}, {920805000, 12357}, {920805300, 12363},
		{920805600, 12363}, {920805900, 12363}, {920806200, 12373},
		{920806500, 12383}, {920806800, 12393}, {920807100, 12399},
		{920807400, 12405}, {920807700, 12411}, {920808000, 12415},
		{920808300, 12420}, {920808600, 12422}, {920808900, 12423},
	}
	var batches []rrd.Batch
	for _, s := range samples {
		batches = append(batches, rrd.At(time.Unix(s.ts, 0), rrd.IntDatum(s.count)))
	}
	// updates done in chunks of 3, like repeated rrdtool update calls
	for i := 0; i < len(batches); i += 3 {
		if err := rrd.UpdateAll(path, rrd.UpdateOptions{}, batches[i:i+3]); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestTutorialFetch(t *testing.T) {
	path := tutorialRRD(t)

	data, err := rrd.Fetch(path, rrd.CFAverage,
		tutorialStart, time.Unix(920809200, 0), 300*time.Second)
	if err != nil {
		t.Fatal(err)
	}

	if got := data.DSNames(); len(got) != 1 || got[0] != "speed" {
		t.Fatalf("ds names = %v, want [speed]", got)
	}
	if got := data.Step(); got != 300*time.Second {
		t.Fatalf("step = %v, want 300s", got)
	}

	expected := []struct {
		ts  int64
		val float64
	}{
		{920804700, math.NaN()},
		{920805000, 4.0000000000e-02},
		{920805300, 2.0000000000e-02},
		{920805600, 0.0000000000e+00},
		{920805900, 0.0000000000e+00},
		{920806200, 3.3333333333e-02},
		{920806500, 3.3333333333e-02},
		{920806800, 3.3333333333e-02},
		{920807100, 2.0000000000e-02},
		{920807400, 2.0000000000e-02},
		{920807700, 2.0000000000e-02},
		{920808000, 1.3333333333e-02},
		{920808300, 1.6666666667e-02},
		{920808600, 6.6666666667e-03},
		{920808900, 3.3333333333e-03},
		{920809200, math.NaN()},
		{920809500, math.NaN()},
	}
	if got := data.RowCount(); got != len(expected) {
		t.Fatalf("row count = %d, want %d", got, len(expected))
	}
	// The range end is also the last row's timestamp.
	last := expected[len(expected)-1].ts
	if got := data.End().Unix(); got != last {
		t.Fatalf("end = %d, want %d", got, last)
	}
	if got := data.Start().Unix(); got != expected[0].ts {
		t.Fatalf("start = %d, want %d", got, expected[0].ts)
	}

	for i, row := range data.Rows() {
		if got := row.Time.Unix(); got != expected[i].ts {
			t.Errorf("row %d time = %d, want %d", i, got, expected[i].ts)
		}
		got := row.Values()[0]
		want := expected[i].val
		if math.IsNaN(want) {
			if !math.IsNaN(got) {
				t.Errorf("row %d = %g, want NaN", i, got)
			}
			continue
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("row %d = %.10g, want %.10g", i, got, want)
		}
	}
}

func TestTutorialGraph(t *testing.T) {
	path := tutorialRRD(t)

	graphStart := tutorialStart
	graphEnd := time.Unix(920808000, 0).UTC()

	myspeed := rrd.MustVarName("myspeed")
	realspeed := rrd.MustVarName("realspeed")
	red := rrd.RGB(0xFF, 0x00, 0x00)

	elements := []rrd.GraphElement{
		rrd.Def{Var: myspeed, RRD: path, DS: "speed", CF: rrd.CFAverage},
		// speed in m/s to km/h
		rrd.CDef{Var: realspeed, RPN: "myspeed,3600,*"},
		rrd.Line{Width: 2, Var: realspeed, Color: &red, Legend: "km/h"},
	}
	props := rrd.GraphProps{
		TimeRange: rrd.TimeRange{Start: graphStart, End: graphEnd},
		Labels:    rrd.Labels{VerticalLabel: "km/h"},
	}

	image, md, err := rrd.Graph(rrd.PNG, props, elements)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(image, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("image does not start with the PNG signature: % x", image[:8])
	}
	if !md.GraphStart.Equal(graphStart) {
		t.Errorf("graph start = %v, want %v", md.GraphStart, graphStart)
	}
	if !md.GraphEnd.Equal(graphEnd) {
		t.Errorf("graph end = %v, want %v", md.GraphEnd, graphEnd)
	}
	// Pixel geometry depends on the installed fonts, so only check
	// consistency rather than exact values.
	if md.GraphWidth == 0 || md.GraphHeight == 0 {
		t.Errorf("zero plot area: %dx%d", md.GraphWidth, md.GraphHeight)
	}
	if md.ImageWidth <= md.GraphWidth || md.ImageHeight <= md.GraphHeight {
		t.Errorf("image %dx%d not larger than plot %dx%d",
			md.ImageWidth, md.ImageHeight, md.GraphWidth, md.GraphHeight)
	}
	if md.ValueMin >= md.ValueMax {
		t.Errorf("value range [%g, %g] is empty", md.ValueMin, md.ValueMax)
	}
}

func TestTutorialGraphWithPrint(t *testing.T) {
	path := tutorialRRD(t)

	myspeed := rrd.MustVarName("myspeed")
	peak := rrd.MustVarName("peak")

	elements := []rrd.GraphElement{
		rrd.Def{Var: myspeed, RRD: path, DS: "speed", CF: rrd.CFAverage},
		rrd.VDef{Var: peak, RPN: "myspeed,MAXIMUM"},
		rrd.Line{Width: 1, Var: myspeed},
		rrd.Print{Var: peak, Format: "peak %lf"},
	}
	props := rrd.GraphProps{
		TimeRange: rrd.TimeRange{Start: tutorialStart, End: time.Unix(920808000, 0)},
	}

	_, md, err := rrd.Graph(rrd.PNG, props, elements)
	if err != nil {
		t.Fatal(err)
	}
	out, ok := md.ExtraInfo["print[0]"]
	if !ok {
		t.Fatalf("PRINT output missing from extra info: %v", md.ExtraInfo)
	}
	if s, _ := out.Str(); s == "" {
		t.Errorf("empty print[0] output")
	}
}
