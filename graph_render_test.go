package rrd_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/rrdkit/rrd"
	"github.com/rrdkit/rrd/internal/testutil"
)

// Renders the smallest possible graph in every output format and checks
// the file signatures.
func TestGraphAllFormats(t *testing.T) {
	path := testutil.TempRRD(t, "data.rrd")

	ds := rrd.GaugeDS(rrd.NewDSName("gauge"), 300, 0, 1000)
	rra, err := rrd.NewArchive(rrd.CFAverage, 0.5, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	// create must predate the first update or the update silently fails
	createAt := time.Unix(1737317206, 0)
	opts := &rrd.CreateOptions{NoOverwrite: true}
	if err := rrd.Create(path, createAt, time.Second, []rrd.DataSource{ds}, []rrd.Archive{rra}, opts); err != nil {
		t.Fatal(err)
	}

	first := time.Unix(1737317211, 0)
	err = rrd.Update(path, []string{"gauge"}, rrd.UpdateOptions{}, []rrd.Batch{
		rrd.At(first, rrd.IntDatum(10)),
		rrd.At(first.Add(60*time.Second), rrd.IntDatum(10)),
	})
	if err != nil {
		t.Fatal(err)
	}

	// a little before and a little after the data points
	start := time.Unix(1737316000, 0).UTC()
	end := time.Unix(1737319000, 0).UTC()

	signatures := []struct {
		name   string
		format rrd.ImageFormat
		magic  []byte
	}{
		{"png", rrd.PNG, []byte("\x89PNG\r\n\x1a\n")},
		{"svg", rrd.SVG, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)},
		{"eps", rrd.EPS, []byte("%!PS-Adobe-3.0")},
		// the PDF minor version varies with the rendering stack
		{"pdf", rrd.PDF, []byte("%PDF-1.")},
	}

	for _, sig := range signatures {
		t.Run(sig.name, func(t *testing.T) {
			g := rrd.MustVarName("g")
			elements := []rrd.GraphElement{
				rrd.Def{Var: g, RRD: path, DS: "gauge", CF: rrd.CFAverage},
				rrd.Line{Width: 4, Var: g},
			}
			props := rrd.GraphProps{
				TimeRange: rrd.TimeRange{Start: start, End: end},
			}

			image, md, err := rrd.Graph(sig.format, props, elements)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(image, sig.magic) {
				n := len(sig.magic)
				if len(image) < n {
					n = len(image)
				}
				t.Fatalf("image starts with %q, want %q", image[:n], sig.magic)
			}
			if !md.GraphStart.Equal(start) || !md.GraphEnd.Equal(end) {
				t.Errorf("graph range [%v, %v], want [%v, %v]", md.GraphStart, md.GraphEnd, start, end)
			}
		})
	}
}

func TestGraphRequiresElements(t *testing.T) {
	g := rrd.MustVarName("g")

	_, _, err := rrd.Graph(rrd.PNG, rrd.GraphProps{}, nil)
	if err == nil {
		t.Error("expected error with no elements")
	}

	_, _, err = rrd.Graph(rrd.PNG, rrd.GraphProps{}, []rrd.GraphElement{
		rrd.Def{Var: g, RRD: "data.rrd", DS: "gauge", CF: rrd.CFAverage},
	})
	if err == nil {
		t.Error("expected error with no drawable element")
	}

	_, _, err = rrd.Graph(rrd.PNG, rrd.GraphProps{}, []rrd.GraphElement{
		rrd.Line{Width: 1, Var: g},
	})
	if err == nil {
		t.Error("expected error with no Def")
	}
}
