// Package main provides the rrdgraph CLI tool: it renders a graph from a
// YAML description instead of rrdtool's positional argument language.
//
// Usage:
//
//	rrdgraph --spec=graph.yaml [--out=graph.png]
//
// A minimal description:
//
//	output: power.png
//	format: PNG
//	title: Power draw
//	start: 2026-08-24T00:00:00Z
//	end: 2026-08-25T00:00:00Z
//	defs:
//	  - var: w
//	    rrd: db.rrd
//	    ds: watts
//	    cf: AVERAGE
//	lines:
//	  - var: w
//	    width: 2
//	    color: "#FF0000"
//	    legend: watts
//
// Reference: https://oss.oetiker.ch/rrdtool/doc/rrdgraph.en.html
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rrdkit/rrd"
)

var (
	specPath = flag.String("spec", "", "Path to the YAML graph description (required)")
	outFlag  = flag.String("out", "", "Output image path (overrides the description's output field)")
	verbose  = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if *specPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --spec flag is required")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// graphSpec is the YAML document structure.
type graphSpec struct {
	Output        string       `yaml:"output"`
	Format        string       `yaml:"format"`
	Title         string       `yaml:"title"`
	VerticalLabel string       `yaml:"vertical_label"`
	Width         uint32       `yaml:"width"`
	Height        uint32       `yaml:"height"`
	Start         yamlTime     `yaml:"start"`
	End           yamlTime     `yaml:"end"`
	Defs          []defSpec    `yaml:"defs"`
	CDefs         []rpnSpec    `yaml:"cdefs"`
	VDefs         []rpnSpec    `yaml:"vdefs"`
	Lines         []lineSpec   `yaml:"lines"`
	Areas         []areaSpec   `yaml:"areas"`
	GPrints       []gprintSpec `yaml:"gprints"`
	Comments      []string     `yaml:"comments"`
}

type defSpec struct {
	Var string `yaml:"var"`
	RRD string `yaml:"rrd"`
	DS  string `yaml:"ds"`
	CF  string `yaml:"cf"`
}

type rpnSpec struct {
	Var string `yaml:"var"`
	RPN string `yaml:"rpn"`
}

type lineSpec struct {
	Var    string  `yaml:"var"`
	Width  float64 `yaml:"width"`
	Color  string  `yaml:"color"`
	Legend string  `yaml:"legend"`
	Stack  bool    `yaml:"stack"`
}

type areaSpec struct {
	Var      string `yaml:"var"`
	Color    string `yaml:"color"`
	Gradient string `yaml:"gradient"`
	Legend   string `yaml:"legend"`
	Stack    bool   `yaml:"stack"`
}

type gprintSpec struct {
	Var    string `yaml:"var"`
	Format string `yaml:"format"`
}

// yamlTime accepts RFC 3339 strings or unix timestamps.
type yamlTime struct {
	time.Time
}

func (t *yamlTime) UnmarshalYAML(node *yaml.Node) error {
	var unix int64
	if err := node.Decode(&unix); err == nil {
		t.Time = time.Unix(unix, 0).UTC()
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("time %q is neither unix seconds nor RFC 3339", s)
	}
	t.Time = parsed
	return nil
}

func run() error {
	if *verbose {
		rrd.SetLogger(rrd.NewLogger(rrd.LogDebug))
	}

	raw, err := os.ReadFile(*specPath)
	if err != nil {
		return err
	}
	var spec graphSpec
	dec := yaml.NewDecoder(strings.NewReader(string(raw)))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return fmt.Errorf("parse %s: %w", *specPath, err)
	}

	out := spec.Output
	if *outFlag != "" {
		out = *outFlag
	}
	if out == "" {
		return fmt.Errorf("no output path: set output in the description or pass --out")
	}

	format, err := parseFormat(spec.Format)
	if err != nil {
		return err
	}
	elements, err := buildElements(spec)
	if err != nil {
		return err
	}

	props := rrd.GraphProps{
		TimeRange: rrd.TimeRange{Start: spec.Start.Time, End: spec.End.Time},
		Labels:    rrd.Labels{Title: spec.Title, VerticalLabel: spec.VerticalLabel},
		Size:      rrd.Size{Width: spec.Width, Height: spec.Height},
	}

	image, md, err := rrd.Graph(format, props, elements)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, image, 0o644); err != nil {
		return err
	}
	if *verbose {
		fmt.Printf("wrote %s (%dx%d, %d bytes)\n", out, md.ImageWidth, md.ImageHeight, len(image))
	}
	return nil
}

func parseFormat(s string) (rrd.ImageFormat, error) {
	switch strings.ToUpper(s) {
	case "", "PNG":
		return rrd.PNG, nil
	case "SVG":
		return rrd.SVG, nil
	case "EPS":
		return rrd.EPS, nil
	case "PDF":
		return rrd.PDF, nil
	default:
		return 0, fmt.Errorf("unknown image format %q", s)
	}
}

func parseCF(s string) (rrd.ConsolidationFunction, error) {
	switch strings.ToUpper(s) {
	case "", "AVERAGE":
		return rrd.CFAverage, nil
	case "MIN":
		return rrd.CFMin, nil
	case "MAX":
		return rrd.CFMax, nil
	case "LAST":
		return rrd.CFLast, nil
	default:
		return 0, fmt.Errorf("unknown consolidation function %q", s)
	}
}

func buildElements(spec graphSpec) ([]rrd.GraphElement, error) {
	var elements []rrd.GraphElement

	for _, d := range spec.Defs {
		v, err := rrd.NewVarName(d.Var)
		if err != nil {
			return nil, err
		}
		cf, err := parseCF(d.CF)
		if err != nil {
			return nil, err
		}
		elements = append(elements, rrd.Def{Var: v, RRD: d.RRD, DS: d.DS, CF: cf})
	}
	for _, c := range spec.CDefs {
		v, err := rrd.NewVarName(c.Var)
		if err != nil {
			return nil, err
		}
		elements = append(elements, rrd.CDef{Var: v, RPN: c.RPN})
	}
	for _, c := range spec.VDefs {
		v, err := rrd.NewVarName(c.Var)
		if err != nil {
			return nil, err
		}
		elements = append(elements, rrd.VDef{Var: v, RPN: c.RPN})
	}
	for _, l := range spec.Lines {
		v, err := rrd.NewVarName(l.Var)
		if err != nil {
			return nil, err
		}
		width := l.Width
		if width == 0 {
			width = 1
		}
		line := rrd.Line{Width: width, Var: v, Legend: l.Legend, Stack: l.Stack}
		if l.Color != "" {
			c, err := rrd.ParseColor(l.Color)
			if err != nil {
				return nil, err
			}
			line.Color = &c
		}
		elements = append(elements, line)
	}
	for _, a := range spec.Areas {
		v, err := rrd.NewVarName(a.Var)
		if err != nil {
			return nil, err
		}
		area := rrd.Area{Var: v, Legend: a.Legend, Stack: a.Stack}
		if a.Color != "" {
			c, err := rrd.ParseColor(a.Color)
			if err != nil {
				return nil, err
			}
			ac := rrd.AreaColor{Color: c}
			if a.Gradient != "" {
				g, err := rrd.ParseColor(a.Gradient)
				if err != nil {
					return nil, err
				}
				ac.Gradient = &g
			}
			area.Color = &ac
		}
		elements = append(elements, area)
	}
	for _, g := range spec.GPrints {
		v, err := rrd.NewVarName(g.Var)
		if err != nil {
			return nil, err
		}
		elements = append(elements, rrd.GPrint{Var: v, Format: g.Format})
	}
	for _, c := range spec.Comments {
		elements = append(elements, rrd.Comment{Text: c})
	}
	return elements, nil
}
