package rrd

// graph_elements.go implements the data and visual elements of a graph.
//
// Data extraction and processing: Def, CDef, VDef.
// Visual elements and controls: Print, GPrint, Comment, VRule, HRule,
// Line, Area, Tick, Shift, TextAlign.
//
// References:
//   - https://oss.oetiker.ch/rrdtool/doc/rrdgraph_data.en.html
//   - https://oss.oetiker.ch/rrdtool/doc/rrdgraph_graph.en.html

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GraphElement is implemented by every element type accepted by Graph.
type GraphElement interface {
	// graphArgs appends the element's argv words.
	graphArgs(args []string) ([]string, error)
}

// Def defines data to fetch from a DS in an RRD file.
type Def struct {
	Var VarName
	RRD string
	DS  string
	CF  ConsolidationFunction
	// Step overrides the fetch resolution in seconds. Zero means librrd
	// decides.
	Step uint32
	// Start and End narrow the fetched range. Zero values mean the
	// graph's own range.
	Start time.Time
	End   time.Time
	// Reduce consolidates fetched data down to the graph resolution.
	// Zero value means unset.
	Reduce ConsolidationFunction
}

func (d Def) graphArgs(args []string) ([]string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DEF:%s=%s:%s:%s", d.Var.name, d.RRD, d.DS, d.CF)
	if d.Step != 0 {
		fmt.Fprintf(&sb, ":step=%d", d.Step)
	}
	if !d.Start.IsZero() {
		fmt.Fprintf(&sb, ":start=%d", d.Start.Unix())
	}
	if !d.End.IsZero() {
		fmt.Fprintf(&sb, ":end=%d", d.End.Unix())
	}
	if d.Reduce != 0 {
		fmt.Fprintf(&sb, ":reduce=%s", d.Reduce)
	}
	return append(args, sb.String()), nil
}

// CDef computes a new set of data points from an RPN expression.
type CDef struct {
	Var VarName
	RPN string
}

func (c CDef) graphArgs(args []string) ([]string, error) {
	return append(args, fmt.Sprintf("CDEF:%s=%s", c.Var.name, c.RPN)), nil
}

// VDef computes a single value and/or time from an RPN expression.
type VDef struct {
	Var VarName
	RPN string
}

func (v VDef) graphArgs(args []string) ([]string, error) {
	return append(args, fmt.Sprintf("VDEF:%s=%s", v.Var.name, v.RPN)), nil
}

// PrintFormatMode selects the interpretation of a Print format string.
// The zero value leaves the mode unspecified (numeric formatting).
type PrintFormatMode int

const (
	// FormatStrftime formats the VDef's time with strftime.
	FormatStrftime PrintFormatMode = iota + 1
	// FormatValstrftime formats the VDef's value as a time.
	FormatValstrftime
	// FormatValstrfduration formats the VDef's value as a duration.
	FormatValstrfduration
)

func (m PrintFormatMode) argString() string {
	switch m {
	case FormatStrftime:
		return "strftime"
	case FormatValstrftime:
		return "valstrftime"
	case FormatValstrfduration:
		return "valstrfduration"
	default:
		return ""
	}
}

// Print emits formatted text on rrdtool's report output (found in the
// graph metadata's ExtraInfo under "print[N]"). Var must name a VDef.
type Print struct {
	Var    VarName
	Format string
	Mode   PrintFormatMode
}

func (p Print) graphArgs(args []string) ([]string, error) {
	s := fmt.Sprintf("PRINT:%s:%s", p.Var.name, p.Format)
	if p.Mode != 0 {
		s += ":" + p.Mode.argString()
	}
	return append(args, s), nil
}

// GPrint is Print rendered inside the graph legend area.
type GPrint struct {
	Var    VarName
	Format string
}

func (g GPrint) graphArgs(args []string) ([]string, error) {
	return append(args, fmt.Sprintf("GPRINT:%s:%s", g.Var.name, g.Format)), nil
}

// Comment places text in the legend.
type Comment struct {
	Text string
}

func (c Comment) graphArgs(args []string) ([]string, error) {
	return append(args, "COMMENT:"+c.Text), nil
}

// Value is a var reference, timestamp, or constant, used by VRule and
// HRule.
type Value struct {
	arg string
}

// VarValue references a variable.
func VarValue(v VarName) Value {
	return Value{arg: v.name}
}

// TimeValue is a fixed timestamp.
func TimeValue(t time.Time) Value {
	return Value{arg: strconv.FormatInt(t.Unix(), 10)}
}

// ConstValue is a fixed number.
func ConstValue(f float64) Value {
	return Value{arg: fmtFloat(f)}
}

// DashSpacing configures the on/off pattern of a dashed line.
type DashSpacing interface {
	dashSpec() string
}

// SimpleDashes is equal on/off spacing. Must be positive.
type SimpleDashes uint32

func (d SimpleDashes) dashSpec() string {
	return fmt.Sprintf("=%d", uint32(d))
}

// CustomDashes is a list of (on, off) spacing pairs. Must be positive.
type CustomDashes [][2]uint32

func (d CustomDashes) dashSpec() string {
	parts := make([]string, 0, len(d)*2)
	for _, pair := range d {
		parts = append(parts, strconv.FormatUint(uint64(pair[0]), 10), strconv.FormatUint(uint64(pair[1]), 10))
	}
	return "=" + strings.Join(parts, ",")
}

// Dashes configures dashed rendering for VRule, HRule, or Line.
type Dashes struct {
	// Spacing is the dash pattern; nil uses the librrd default (5,5).
	Spacing DashSpacing
	// Offset shifts the start of the dash pattern.
	Offset *uint32
}

// appendTo appends ":dashes[=spec][:dash-offset=N]".
func (d Dashes) appendTo(sb *strings.Builder) {
	sb.WriteString(":dashes")
	if d.Spacing != nil {
		sb.WriteString(d.Spacing.dashSpec())
	}
	if d.Offset != nil {
		fmt.Fprintf(sb, ":dash-offset=%d", *d.Offset)
	}
}

// VRule draws a vertical line at a specific time.
//
// Legend text is appended verbatim; colons must be escaped as `\:`. An
// empty Legend is omitted.
type VRule struct {
	Value  Value
	Color  Color
	Legend string
	Dashes *Dashes
}

func (r VRule) graphArgs(args []string) ([]string, error) {
	return append(args, ruleArg("VRULE", r.Value, r.Color, r.Legend, r.Dashes)), nil
}

// HRule draws a horizontal line at a particular value.
type HRule struct {
	Value  Value
	Color  Color
	Legend string
	Dashes *Dashes
}

func (r HRule) graphArgs(args []string) ([]string, error) {
	return append(args, ruleArg("HRULE", r.Value, r.Color, r.Legend, r.Dashes)), nil
}

func ruleArg(kind string, value Value, color Color, legend string, dashes *Dashes) string {
	var sb strings.Builder
	sb.WriteString(kind)
	sb.WriteByte(':')
	sb.WriteString(value.arg)
	sb.WriteString(color.String())
	if legend != "" {
		sb.WriteByte(':')
		sb.WriteString(legend)
	}
	if dashes != nil {
		dashes.appendTo(&sb)
	}
	return sb.String()
}

// Line plots the value of a var over time.
type Line struct {
	// Width is the line width in pixels.
	Width float64
	Var   VarName
	// Color is optional; a legend requires a color.
	Color  *Color
	Legend string
	// Stack stacks this line on top of the previous Line or Area.
	Stack bool
	// SkipScale excludes this line from y-axis autoscaling.
	SkipScale bool
	Dashes    *Dashes
}

func (l Line) graphArgs(args []string) ([]string, error) {
	if l.Legend != "" && l.Color == nil {
		return nil, invalidArg("line legend requires a color")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "LINE%s:%s", fmtFloat(l.Width), l.Var.name)
	if l.Color != nil {
		sb.WriteString(l.Color.String())
		if l.Legend != "" {
			sb.WriteByte(':')
			sb.WriteString(l.Legend)
		}
	}
	// With no color at all, the documented form is LINEx:var::STACK.
	if l.Stack {
		if l.Color == nil {
			sb.WriteByte(':')
		}
		sb.WriteString(":STACK")
	}
	if l.SkipScale {
		sb.WriteString(":skipscale")
	}
	if l.Dashes != nil {
		l.Dashes.appendTo(&sb)
	}
	return append(args, sb.String()), nil
}

// AreaColor is the fill for an Area: a solid color, or a two-color
// gradient.
type AreaColor struct {
	Color Color
	// Gradient, when set, makes the fill a gradient from Color to this.
	Gradient *Color
	// GradientHeight tunes the gradient extent; nil leaves it to librrd.
	GradientHeight *float64
}

// Area is Line with the space between the line and the x axis filled in.
type Area struct {
	Var VarName
	// Color is optional; a legend requires a color.
	Color  *AreaColor
	Legend string
	Stack  bool
	// SkipScale excludes this area from y-axis autoscaling.
	SkipScale bool
}

func (a Area) graphArgs(args []string) ([]string, error) {
	if a.Legend != "" && a.Color == nil {
		return nil, invalidArg("area legend requires a color")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "AREA:%s", a.Var.name)
	var gradientHeight *float64
	if a.Color != nil {
		sb.WriteString(a.Color.Color.String())
		if a.Color.Gradient != nil {
			sb.WriteString(a.Color.Gradient.String())
			gradientHeight = a.Color.GradientHeight
		}
		if a.Legend != "" {
			sb.WriteByte(':')
			sb.WriteString(a.Legend)
		}
	}
	if a.Stack {
		if a.Legend == "" {
			sb.WriteByte(':')
		}
		sb.WriteString(":STACK")
	}
	if a.SkipScale {
		sb.WriteString(":skipscale")
	}
	if gradientHeight != nil {
		fmt.Fprintf(&sb, ":gradheight=%s", fmtFloat(*gradientHeight))
	}
	return append(args, sb.String()), nil
}

// Tick draws tick marks along the x axis wherever the var is nonzero.
type Tick struct {
	Var   VarName
	Color Color
	// Fraction is the tick length as a fraction of the y axis; nil uses
	// the librrd default.
	Fraction *float64
	Legend   string
}

func (t Tick) graphArgs(args []string) ([]string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TICK:%s%s", t.Var.name, t.Color)
	if t.Fraction != nil {
		fmt.Fprintf(&sb, ":%s", fmtFloat(*t.Fraction))
	}
	if t.Legend != "" {
		sb.WriteByte(':')
		sb.WriteString(t.Legend)
	}
	return append(args, sb.String()), nil
}

// ShiftOffset is the time offset applied by Shift.
type ShiftOffset struct {
	arg string
}

// OffsetVar takes the offset from a variable.
func OffsetVar(v VarName) ShiftOffset {
	return ShiftOffset{arg: v.name}
}

// OffsetSeconds shifts by a fixed number of seconds.
func OffsetSeconds(s float64) ShiftOffset {
	return ShiftOffset{arg: fmtFloat(s)}
}

// Shift moves the data of a var forward or backward in time.
type Shift struct {
	Var    VarName
	Offset ShiftOffset
}

func (s Shift) graphArgs(args []string) ([]string, error) {
	return append(args, fmt.Sprintf("SHIFT:%s:%s", s.Var.name, s.Offset.arg)), nil
}

// TextAlign controls alignment for subsequent legend text.
type TextAlign int

// Text alignments.
const (
	AlignLeft TextAlign = iota + 1
	AlignRight
	AlignJustified
	AlignCenter
)

func (t TextAlign) graphArgs(args []string) ([]string, error) {
	var name string
	switch t {
	case AlignLeft:
		name = "left"
	case AlignRight:
		name = "right"
	case AlignJustified:
		name = "justified"
	case AlignCenter:
		name = "center"
	default:
		return nil, invalidArg("invalid text alignment %d", int(t))
	}
	return append(args, "TEXTALIGN:"+name), nil
}
