package rrd

// graph_props.go implements the option flags of a graph invocation.
// Reference: https://oss.oetiker.ch/rrdtool/doc/rrdgraph.en.html

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// GraphProps are the graph-wide options. There are many fields; leave the
// uninteresting ones at their zero values.
type GraphProps struct {
	TimeRange TimeRange
	Labels    Labels
	Size      Size
	Limits    Limits
	XAxis     XAxis
	YAxis     YAxis
	// RightYAxis is a pointer since enabling it makes some arguments
	// mandatory.
	RightYAxis *RightYAxis
	Legend     GraphLegend
	Misc       Misc
}

func (p GraphProps) appendArgs(args []string) ([]string, error) {
	args = p.TimeRange.appendArgs(args)
	args = p.Labels.appendArgs(args)
	args = p.Size.appendArgs(args)
	args = p.Limits.appendArgs(args)
	args = p.XAxis.appendArgs(args)
	var err error
	if args, err = p.YAxis.appendArgs(args); err != nil {
		return nil, err
	}
	if p.RightYAxis != nil {
		args = p.RightYAxis.appendArgs(args)
	}
	args = p.Legend.appendArgs(args)
	return p.Misc.appendArgs(args)
}

// TimeRange bounds the graphed time window.
type TimeRange struct {
	// Start and End bound the window; zero values use librrd defaults
	// (end now, start one day earlier).
	Start time.Time
	End   time.Time
	// StepSeconds suggests the data resolution. Zero lets librrd pick.
	StepSeconds uint32
}

func (t TimeRange) appendArgs(args []string) []string {
	if !t.Start.IsZero() {
		args = append(args, "--start", strconv.FormatInt(t.Start.Unix(), 10))
	}
	if !t.End.IsZero() {
		args = append(args, "--end", strconv.FormatInt(t.End.Unix(), 10))
	}
	if t.StepSeconds != 0 {
		args = append(args, "--step", strconv.FormatUint(uint64(t.StepSeconds), 10))
	}
	return args
}

// Labels titles the graph and the y axis.
type Labels struct {
	Title         string
	VerticalLabel string
}

func (l Labels) appendArgs(args []string) []string {
	if l.Title != "" {
		args = append(args, "--title", l.Title)
	}
	if l.VerticalLabel != "" {
		args = append(args, "--vertical-label", l.VerticalLabel)
	}
	return args
}

// Size sets the plot dimensions in pixels.
type Size struct {
	Width  uint32
	Height uint32
	// FullSizeMode makes Width/Height the outer image size rather than
	// the plot area size.
	FullSizeMode bool
	// OnlyGraph renders the plot with no labels or legend.
	OnlyGraph bool
}

func (s Size) appendArgs(args []string) []string {
	if s.Width != 0 {
		args = append(args, "--width", strconv.FormatUint(uint64(s.Width), 10))
	}
	if s.Height != 0 {
		args = append(args, "--height", strconv.FormatUint(uint64(s.Height), 10))
	}
	if s.OnlyGraph {
		args = append(args, "--only-graph")
	}
	if s.FullSizeMode {
		args = append(args, "--full-size-mode")
	}
	return args
}

// AltAutoscale tunes the alternative autoscaling algorithm.
type AltAutoscale struct {
	Min *float64
	Max *float64
}

// Limits bounds the y axis.
type Limits struct {
	UpperLimit *float64
	LowerLimit *float64
	// Rigid enforces the limits even when data falls outside them.
	Rigid bool
	// AllowShrink permits the plot to shrink below Width/Height.
	AllowShrink bool
	// AltAutoscale, when non-nil, enables alternative autoscaling.
	AltAutoscale *AltAutoscale
	NoGridFit    bool
}

func (l Limits) appendArgs(args []string) []string {
	if l.UpperLimit != nil {
		args = append(args, "--upper-limit", fmtFloat(*l.UpperLimit))
	}
	if l.LowerLimit != nil {
		args = append(args, "--lower-limit", fmtFloat(*l.LowerLimit))
	}
	if l.Rigid {
		args = append(args, "--rigid")
	}
	if l.AllowShrink {
		args = append(args, "--allow-shrink")
	}
	if l.AltAutoscale != nil {
		args = append(args, "--alt-autoscale")
		if l.AltAutoscale.Min != nil {
			args = append(args, "--alt-autoscale-min", fmtFloat(*l.AltAutoscale.Min))
		}
		if l.AltAutoscale.Max != nil {
			args = append(args, "--alt-autoscale-max", fmtFloat(*l.AltAutoscale.Max))
		}
	}
	if l.NoGridFit {
		args = append(args, "--no-gridfit")
	}
	return args
}

// AxisGridTimeUnit is the unit in an x-axis grid specification.
type AxisGridTimeUnit int

// X-axis grid time units.
const (
	UnitSecond AxisGridTimeUnit = iota + 1
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

func (u AxisGridTimeUnit) argString() string {
	switch u {
	case UnitSecond:
		return "SECOND"
	case UnitMinute:
		return "MINUTE"
	case UnitHour:
		return "HOUR"
	case UnitDay:
		return "DAY"
	case UnitWeek:
		return "WEEK"
	case UnitMonth:
		return "MONTH"
	case UnitYear:
		return "YEAR"
	default:
		return "UNKNOWN"
	}
}

// XAxisGrid configures the x-axis grid, either disabled or fully custom.
type XAxisGrid struct {
	// None disables the grid entirely; the remaining fields are then
	// ignored.
	None bool

	BaseGridTime   AxisGridTimeUnit
	BaseGridStep   uint32
	MajorGridTime  AxisGridTimeUnit
	MajorGridStep  uint32
	LabelsTime     AxisGridTimeUnit
	LabelsStep     uint32
	LabelPlacement uint32
	LabelFormat    string
}

// XAxis configures the x axis.
type XAxis struct {
	Grid       *XAxisGrid
	WeekFormat string
}

func (x XAxis) appendArgs(args []string) []string {
	if x.Grid != nil {
		args = append(args, "--x-grid")
		if x.Grid.None {
			args = append(args, "none")
		} else {
			args = append(args, fmt.Sprintf("%s:%d:%s:%d:%s:%d:%d:%s",
				x.Grid.BaseGridTime.argString(), x.Grid.BaseGridStep,
				x.Grid.MajorGridTime.argString(), x.Grid.MajorGridStep,
				x.Grid.LabelsTime.argString(), x.Grid.LabelsStep,
				x.Grid.LabelPlacement, x.Grid.LabelFormat))
		}
	}
	if x.WeekFormat != "" {
		args = append(args, "--week-fmt", x.WeekFormat)
	}
	return args
}

// YAxisGrid configures the y-axis grid, either disabled or fully custom.
type YAxisGrid struct {
	// None disables the grid entirely; the remaining fields are then
	// ignored.
	None bool

	GridStep    uint32
	LabelFactor uint32
}

// YAxisFormatter selects how y-axis labels are formatted.
type YAxisFormatter int

// Y-axis formatters.
const (
	FormatterNumeric YAxisFormatter = iota + 1
	FormatterTimestamp
	FormatterDuration
)

func (f YAxisFormatter) argString() string {
	switch f {
	case FormatterNumeric:
		return "numeric"
	case FormatterTimestamp:
		return "timestamp"
	case FormatterDuration:
		return "duration"
	default:
		return "UNKNOWN"
	}
}

// YAxis configures the left y axis.
type YAxis struct {
	Grid      *YAxisGrid
	Formatter YAxisFormatter
	Format    string
	AltYGrid  bool
	// Logarithmic switches the y axis to log scale.
	Logarithmic bool
	// UnitsExponent pins SI scaling to 10^exp; must be a multiple of 3
	// in [-18, 18]. Nil lets librrd pick.
	UnitsExponent *int
	UnitsLength   uint8
	// UnitsSI uses proper SI magnitudes (k, M, ...) in log mode.
	UnitsSI bool
}

func (y YAxis) appendArgs(args []string) ([]string, error) {
	if y.Grid != nil {
		args = append(args, "--y-grid")
		if y.Grid.None {
			args = append(args, "none")
		} else {
			args = append(args, fmt.Sprintf("%d:%d", y.Grid.GridStep, y.Grid.LabelFactor))
		}
	}
	if y.Formatter != 0 {
		args = append(args, "--left-axis-formatter", y.Formatter.argString())
	}
	if y.Format != "" {
		args = append(args, "--left-axis-format", y.Format)
	}
	if y.AltYGrid {
		args = append(args, "--alt-y-grid")
	}
	if y.Logarithmic {
		args = append(args, "--logarithmic")
	}
	if y.UnitsExponent != nil {
		exp := *y.UnitsExponent
		if exp < -18 || exp > 18 || exp%3 != 0 {
			return nil, invalidArg("units exponent must be a multiple of 3 in [-18, 18], got %d", exp)
		}
		args = append(args, "--units-exponent", strconv.Itoa(exp))
	}
	if y.UnitsLength != 0 {
		args = append(args, "--units-length", strconv.FormatUint(uint64(y.UnitsLength), 10))
	}
	if y.UnitsSI {
		args = append(args, "--units", "si")
	}
	return args, nil
}

// RightYAxis enables and configures a second y axis on the right, scaled
// and shifted relative to the left one.
type RightYAxis struct {
	Scale     float64
	Shift     uint32
	Label     string
	Formatter YAxisFormatter
	Format    string
}

func (r RightYAxis) appendArgs(args []string) []string {
	args = append(args, "--right-axis", fmt.Sprintf("%s:%d", fmtFloat(r.Scale), r.Shift))
	if r.Label != "" {
		args = append(args, "--right-axis-label", r.Label)
	}
	if r.Formatter != 0 {
		args = append(args, "--right-axis-formatter", r.Formatter.argString())
	}
	if r.Format != "" {
		args = append(args, "--right-axis-format", r.Format)
	}
	return args
}

// LegendPosition moves the legend block.
type LegendPosition int

// Legend positions.
const (
	LegendNorth LegendPosition = iota + 1
	LegendSouth
	LegendEast
	LegendWest
)

// LegendDirection orders the legend lines.
type LegendDirection int

// Legend directions.
const (
	LegendTopDown LegendDirection = iota + 1
	LegendBottomUp
	LegendBottomUp2
)

// GraphLegend configures the legend block. (Named to avoid clashing with
// per-element legend text.)
type GraphLegend struct {
	NoLegend         bool
	ForceRulesLegend bool
	Position         LegendPosition
	Direction        LegendDirection
}

func (l GraphLegend) appendArgs(args []string) []string {
	if l.NoLegend {
		args = append(args, "--no-legend")
	}
	if l.ForceRulesLegend {
		args = append(args, "--force-rules-legend")
	}
	if l.Position != 0 {
		var pos string
		switch l.Position {
		case LegendNorth:
			pos = "north"
		case LegendSouth:
			pos = "south"
		case LegendEast:
			pos = "east"
		case LegendWest:
			pos = "west"
		}
		args = append(args, "--legend-position="+pos)
	}
	if l.Direction != 0 {
		var dir string
		switch l.Direction {
		case LegendTopDown:
			dir = "topdown"
		case LegendBottomUp:
			dir = "bottomup"
		case LegendBottomUp2:
			dir = "bottomup2"
		}
		args = append(args, "--legend-direction="+dir)
	}
	return args
}

// ColorTag names a canvas area that can be recolored.
type ColorTag int

// Color tags.
const (
	ColorBack ColorTag = iota + 1
	ColorCanvas
	ColorShadeA
	ColorShadeB
	ColorGrid
	ColorMGrid
	ColorFont
	ColorAxis
	ColorFrame
	ColorArrow
)

func (t ColorTag) argString() string {
	switch t {
	case ColorBack:
		return "BACK"
	case ColorCanvas:
		return "CANVAS"
	case ColorShadeA:
		return "SHADEA"
	case ColorShadeB:
		return "SHADEB"
	case ColorGrid:
		return "GRID"
	case ColorMGrid:
		return "MGRID"
	case ColorFont:
		return "FONT"
	case ColorAxis:
		return "AXIS"
	case ColorFrame:
		return "FRAME"
	case ColorArrow:
		return "ARROW"
	default:
		return "UNKNOWN"
	}
}

// FontTag names a text role whose font can be changed.
type FontTag int

// Font tags.
const (
	FontDefault FontTag = iota + 1
	FontTitle
	FontAxis
	FontUnit
	FontLegend
	FontWatermark
)

func (t FontTag) argString() string {
	switch t {
	case FontDefault:
		return "DEFAULT"
	case FontTitle:
		return "TITLE"
	case FontAxis:
		return "AXIS"
	case FontUnit:
		return "UNIT"
	case FontLegend:
		return "LEGEND"
	case FontWatermark:
		return "WATERMARK"
	default:
		return "UNKNOWN"
	}
}

// FontParams sets the size, and optionally the face, for a FontTag.
type FontParams struct {
	Size uint32
	Name string
}

// FontRenderMode controls font hinting.
type FontRenderMode int

// Font render modes.
const (
	FontModeNormal FontRenderMode = iota + 1
	FontModeLight
	FontModeMono
)

// GraphRenderMode controls graph anti-aliasing.
type GraphRenderMode int

// Graph render modes.
const (
	GraphModeNormal GraphRenderMode = iota + 1
	GraphModeMono
)

// GridDash is the on/off dash pattern for grid lines.
type GridDash struct {
	On  uint32
	Off uint32
}

// Misc holds the remaining graph options.
type Misc struct {
	// Colors recolors canvas areas. Emitted in tag order.
	Colors        map[ColorTag]Color
	GridDash      *GridDash
	Border        *uint32
	DynamicLabels bool
	// Zoom magnifies the graph; must be positive.
	Zoom *float64
	// Fonts overrides text fonts per role. Emitted in tag order.
	Fonts                  map[FontTag]FontParams
	FontRenderMode         FontRenderMode
	FontSmoothingThreshold *uint32
	PangoMarkup            bool
	GraphRenderMode        GraphRenderMode
	SlopeMode              bool
	Interlaced             bool
	TabWidth               *uint32
	// Base is 1000 or 1024, for memory-style scaling.
	Base                    *uint32
	Watermark               string
	UseNanForAllMissingData bool
}

func (m Misc) appendArgs(args []string) ([]string, error) {
	colorTags := make([]int, 0, len(m.Colors))
	for tag := range m.Colors {
		colorTags = append(colorTags, int(tag))
	}
	sort.Ints(colorTags)
	for _, tag := range colorTags {
		args = append(args, "--color", ColorTag(tag).argString()+m.Colors[ColorTag(tag)].String())
	}

	if m.GridDash != nil {
		args = append(args, "--grid-dash", fmt.Sprintf("%d:%d", m.GridDash.On, m.GridDash.Off))
	}
	if m.Border != nil {
		args = append(args, "--border", strconv.FormatUint(uint64(*m.Border), 10))
	}
	if m.DynamicLabels {
		args = append(args, "--dynamic-labels")
	}
	if m.Zoom != nil {
		if *m.Zoom <= 0 {
			return nil, invalidArg("zoom must be positive, got %v", *m.Zoom)
		}
		args = append(args, "--zoom", fmtFloat(*m.Zoom))
	}

	fontTags := make([]int, 0, len(m.Fonts))
	for tag := range m.Fonts {
		fontTags = append(fontTags, int(tag))
	}
	sort.Ints(fontTags)
	for _, tag := range fontTags {
		fp := m.Fonts[FontTag(tag)]
		spec := fmt.Sprintf("%s:%d", FontTag(tag).argString(), fp.Size)
		if fp.Name != "" {
			spec += ":" + fp.Name
		}
		args = append(args, "--font", spec)
	}

	if m.FontRenderMode != 0 {
		var mode string
		switch m.FontRenderMode {
		case FontModeNormal:
			mode = "normal"
		case FontModeLight:
			mode = "light"
		case FontModeMono:
			mode = "mono"
		}
		args = append(args, "--font-render-mode", mode)
	}
	if m.FontSmoothingThreshold != nil {
		args = append(args, "--font-smoothing-threshold", strconv.FormatUint(uint64(*m.FontSmoothingThreshold), 10))
	}
	if m.PangoMarkup {
		args = append(args, "--pango-markup")
	}
	if m.GraphRenderMode != 0 {
		var mode string
		switch m.GraphRenderMode {
		case GraphModeNormal:
			mode = "normal"
		case GraphModeMono:
			mode = "mono"
		}
		args = append(args, "--graph-render-mode", mode)
	}
	if m.SlopeMode {
		args = append(args, "--slope-mode")
	}
	if m.Interlaced {
		args = append(args, "--interlaced")
	}
	if m.TabWidth != nil {
		args = append(args, "--tabwidth", strconv.FormatUint(uint64(*m.TabWidth), 10))
	}
	if m.Base != nil {
		args = append(args, "--base", strconv.FormatUint(uint64(*m.Base), 10))
	}
	if m.Watermark != "" {
		args = append(args, "--watermark", m.Watermark)
	}
	if m.UseNanForAllMissingData {
		args = append(args, "--use-nan-for-all-missing-data")
	}
	return args, nil
}
