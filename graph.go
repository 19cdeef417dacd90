package rrd

// graph.go implements graph rendering from RRD data.
// Reference: https://oss.oetiker.ch/rrdtool/doc/rrdgraph.en.html

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rrdkit/rrd/internal/librrd"
	"github.com/rrdkit/rrd/internal/logging"
)

// Graph renders a graph and returns the image bytes in the requested
// format along with metadata about the rendering.
//
// At least one Def element is required, plus at least one of Line, Area,
// Print, or GPrint; librrd produces no output at all otherwise, so these
// are rejected up front.
func Graph(format ImageFormat, props GraphProps, elements []GraphElement) ([]byte, *GraphMetadata, error) {
	var haveDef, haveVisual bool
	for _, e := range elements {
		switch e.(type) {
		case Def:
			haveDef = true
		case Line, Area, Print, GPrint:
			haveVisual = true
		}
	}
	if !haveDef {
		return nil, nil, invalidArg("graph needs at least one Def element")
	}
	if !haveVisual {
		return nil, nil, invalidArg("graph needs at least one Line, Area, GPrint, or Print element")
	}

	// rrdtool invokes rrd_graph_v with a leading "graphv" command word.
	// Filename "-" routes the image into the returned info list instead
	// of a file.
	args, err := format.appendArgs([]string{"graphv", "-"})
	if err != nil {
		return nil, nil, err
	}
	if args, err = props.appendArgs(args); err != nil {
		return nil, nil, err
	}
	for _, e := range elements {
		if args, err = e.graphArgs(args); err != nil {
			return nil, nil, err
		}
	}

	logf().Debugf(logging.NSGraph+"args=%v", args)

	entries, err := librrd.GraphV(args)
	if err != nil {
		return nil, nil, err
	}
	info, err := infoMap(entries)
	if err != nil {
		return nil, nil, err
	}

	image, err := takeBlob(info, "image")
	if err != nil {
		return nil, nil, err
	}

	md := &GraphMetadata{}
	for _, f := range []struct {
		dst *uint64
		key string
	}{
		{&md.GraphLeft, "graph_left"},
		{&md.GraphTop, "graph_top"},
		{&md.GraphWidth, "graph_width"},
		{&md.GraphHeight, "graph_height"},
		{&md.ImageWidth, "image_width"},
		{&md.ImageHeight, "image_height"},
	} {
		if *f.dst, err = takeCount(info, f.key); err != nil {
			return nil, nil, err
		}
	}
	start, err := takeCount(info, "graph_start")
	if err != nil {
		return nil, nil, err
	}
	end, err := takeCount(info, "graph_end")
	if err != nil {
		return nil, nil, err
	}
	md.GraphStart = time.Unix(int64(start), 0).UTC()
	md.GraphEnd = time.Unix(int64(end), 0).UTC()
	if md.ValueMin, err = takeFloat(info, "value_min"); err != nil {
		return nil, nil, err
	}
	if md.ValueMax, err = takeFloat(info, "value_max"); err != nil {
		return nil, nil, err
	}
	md.ExtraInfo = info

	return image, md, nil
}

func takeBlob(info map[string]InfoValue, key string) ([]byte, error) {
	v, ok := info[key]
	if !ok {
		return nil, fmt.Errorf("rrd: graph info missing %q", key)
	}
	delete(info, key)
	b, ok := v.Blob()
	if !ok {
		return nil, fmt.Errorf("rrd: graph info %q has unexpected type", key)
	}
	return b, nil
}

func takeCount(info map[string]InfoValue, key string) (uint64, error) {
	v, ok := info[key]
	if !ok {
		return 0, fmt.Errorf("rrd: graph info missing %q", key)
	}
	delete(info, key)
	c, ok := v.Count()
	if !ok {
		return 0, fmt.Errorf("rrd: graph info %q has unexpected type", key)
	}
	return c, nil
}

func takeFloat(info map[string]InfoValue, key string) (float64, error) {
	v, ok := info[key]
	if !ok {
		return 0, fmt.Errorf("rrd: graph info missing %q", key)
	}
	delete(info, key)
	f, ok := v.Float()
	if !ok {
		return 0, fmt.Errorf("rrd: graph info %q has unexpected type", key)
	}
	return f, nil
}

// GraphMetadata describes a rendered graph. Pixel fields depend on the
// installed fonts, so treat them as informational rather than stable.
type GraphMetadata struct {
	// GraphLeft is the offset in pixels from the left edge of the image.
	GraphLeft uint64
	// GraphTop is the offset in pixels from the top edge of the image.
	GraphTop uint64
	// GraphWidth is the width in pixels of the plot area.
	GraphWidth uint64
	// GraphHeight is the height in pixels of the plot area.
	GraphHeight uint64
	// GraphStart is the time at the left edge of the plot.
	GraphStart time.Time
	// GraphEnd is the time at the right edge of the plot.
	GraphEnd time.Time
	// ImageWidth is the total image width in pixels.
	ImageWidth uint64
	// ImageHeight is the total image height in pixels.
	ImageHeight uint64
	// ValueMin is the smallest value on the y axis.
	ValueMin float64
	// ValueMax is the largest value on the y axis.
	ValueMax float64
	// ExtraInfo holds any additional keys rrd_graph_v returned; contents
	// depend on the elements given (PRINT output lands here).
	ExtraInfo map[string]InfoValue
}

// ImageFormat selects the graph output format.
type ImageFormat int

const (
	// PNG image output.
	PNG ImageFormat = iota
	// SVG vector output.
	SVG
	// EPS PostScript output.
	EPS
	// PDF output.
	PDF
)

func (f ImageFormat) appendArgs(args []string) ([]string, error) {
	var name string
	switch f {
	case PNG:
		name = "PNG"
	case SVG:
		name = "SVG"
	case EPS:
		name = "EPS"
	case PDF:
		name = "PDF"
	default:
		return nil, invalidArg("invalid image format %d", int(f))
	}
	return append(args, "--imgformat", name), nil
}

// Color is an RGB(A) color for graph elements and canvas areas. It can
// be parsed from a CSS-style 6 or 8 digit hex string with ParseColor.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
	// Alpha is nil for plain RGB colors.
	Alpha *uint8
}

// RGB builds an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{Red: r, Green: g, Blue: b}
}

// RGBA builds a color with an alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{Red: r, Green: g, Blue: b, Alpha: &a}
}

var colorRe = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ParseColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseColor(s string) (Color, error) {
	m := colorRe.FindStringSubmatch(s)
	if m == nil {
		return Color{}, invalidArg("invalid color %q", s)
	}
	hex := m[1]
	parse := func(i int) uint8 {
		v, _ := strconv.ParseUint(hex[i:i+2], 16, 8)
		return uint8(v)
	}
	c := Color{Red: parse(0), Green: parse(2), Blue: parse(4)}
	if len(hex) == 8 {
		a := parse(6)
		c.Alpha = &a
	}
	return c, nil
}

// String returns the #hex form librrd expects.
func (c Color) String() string {
	if c.Alpha != nil {
		return fmt.Sprintf("#%02X%02X%02X%02X", c.Red, c.Green, c.Blue, *c.Alpha)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.Red, c.Green, c.Blue)
}

// VarName is a variable name used by graph data definitions. To avoid
// clashing with RPN operators, avoid all-uppercase names.
type VarName struct {
	name string
}

var varNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// NewVarName validates and builds a VarName.
func NewVarName(name string) (VarName, error) {
	if len(name) > 255 || !varNameRe.MatchString(name) {
		return VarName{}, invalidArg("invalid var name %q", name)
	}
	return VarName{name: name}, nil
}

// MustVarName is NewVarName that panics on invalid input, for literals in
// tests and examples.
func MustVarName(name string) VarName {
	v, err := NewVarName(name)
	if err != nil {
		panic(err)
	}
	return v
}
