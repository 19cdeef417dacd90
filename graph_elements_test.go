package rrd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elementArgs(t *testing.T, e GraphElement) []string {
	t.Helper()
	args, err := e.graphArgs(nil)
	require.NoError(t, err)
	return args
}

func TestVarNameValid(t *testing.T) {
	_, err := NewVarName("foo_bar-baz-1")
	assert.NoError(t, err)
}

func TestVarNameInvalid(t *testing.T) {
	for _, name := range []string{"foo@bar", "", "a b"} {
		_, err := NewVarName(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestDefArgs(t *testing.T) {
	args := elementArgs(t, Def{
		Var:    MustVarName("var"),
		RRD:    "data.rrd",
		DS:     "DS1",
		CF:     CFAverage,
		Step:   1,
		Start:  time.Unix(100, 0),
		End:    time.Unix(1000, 0),
		Reduce: CFMax,
	})
	assert.Equal(t, []string{"DEF:var=data.rrd:DS1:AVERAGE:step=1:start=100:end=1000:reduce=MAX"}, args)
}

func TestDefArgsMinimal(t *testing.T) {
	args := elementArgs(t, Def{Var: MustVarName("var"), RRD: "data.rrd", DS: "DS1", CF: CFAverage})
	assert.Equal(t, []string{"DEF:var=data.rrd:DS1:AVERAGE"}, args)
}

func TestCDefArgs(t *testing.T) {
	args := elementArgs(t, CDef{Var: MustVarName("var"), RPN: "rpn"})
	assert.Equal(t, []string{"CDEF:var=rpn"}, args)
}

func TestVDefArgs(t *testing.T) {
	args := elementArgs(t, VDef{Var: MustVarName("var"), RPN: "rpn"})
	assert.Equal(t, []string{"VDEF:var=rpn"}, args)
}

func TestPrintArgs(t *testing.T) {
	args := elementArgs(t, Print{Var: MustVarName("var"), Format: "fmt", Mode: FormatValstrftime})
	assert.Equal(t, []string{"PRINT:var:fmt:valstrftime"}, args)
}

func TestGPrintArgs(t *testing.T) {
	args := elementArgs(t, GPrint{Var: MustVarName("var"), Format: "fmt"})
	assert.Equal(t, []string{"GPRINT:var:fmt"}, args)
}

func TestCommentArgs(t *testing.T) {
	args := elementArgs(t, Comment{Text: "comment"})
	assert.Equal(t, []string{"COMMENT:comment"}, args)
}

func TestVRuleArgs(t *testing.T) {
	offset := uint32(10)
	args := elementArgs(t, VRule{
		Value:  VarValue(MustVarName("var")),
		Color:  RGBA(0x01, 0x02, 0x03, 0x04),
		Legend: "foo",
		Dashes: &Dashes{Spacing: SimpleDashes(4), Offset: &offset},
	})
	assert.Equal(t, []string{"VRULE:var#01020304:foo:dashes=4:dash-offset=10"}, args)
}

func TestHRuleArgs(t *testing.T) {
	args := elementArgs(t, HRule{
		Value:  TimeValue(time.Unix(1000, 0)),
		Color:  RGB(0x01, 0x02, 0x03),
		Dashes: &Dashes{Spacing: CustomDashes{{1, 2}, {3, 4}}},
	})
	assert.Equal(t, []string{"HRULE:1000#010203:dashes=1,2,3,4"}, args)
}

func TestLineArgs(t *testing.T) {
	color := RGBA(0x01, 0x02, 0x03, 0x04)
	args := elementArgs(t, Line{
		Width:     3.2,
		Var:       MustVarName("var"),
		Color:     &color,
		Legend:    "foo",
		Stack:     true,
		SkipScale: true,
	})
	assert.Equal(t, []string{"LINE3.2:var#01020304:foo:STACK:skipscale"}, args)
}

func TestLineArgsNoColorStack(t *testing.T) {
	args := elementArgs(t, Line{Width: 1, Var: MustVarName("var"), Stack: true})
	assert.Equal(t, []string{"LINE1:var::STACK"}, args)
}

func TestLineLegendRequiresColor(t *testing.T) {
	_, err := Line{Width: 1, Var: MustVarName("var"), Legend: "foo"}.graphArgs(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAreaArgs(t *testing.T) {
	gradient := RGBA(0x41, 0x42, 0x43, 0x44)
	height := 10.1
	args := elementArgs(t, Area{
		Var: MustVarName("var"),
		Color: &AreaColor{
			Color:          RGBA(0x01, 0x02, 0x03, 0x04),
			Gradient:       &gradient,
			GradientHeight: &height,
		},
		Stack:     true,
		SkipScale: true,
	})
	assert.Equal(t, []string{"AREA:var#01020304#41424344::STACK:skipscale:gradheight=10.1"}, args)
}

func TestAreaLegendRequiresColor(t *testing.T) {
	_, err := Area{Var: MustVarName("var"), Legend: "foo"}.graphArgs(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTickArgs(t *testing.T) {
	fraction := 1.2
	args := elementArgs(t, Tick{
		Var:      MustVarName("var"),
		Color:    RGBA(0x01, 0x02, 0x03, 0x04),
		Fraction: &fraction,
	})
	assert.Equal(t, []string{"TICK:var#01020304:1.2"}, args)
}

func TestShiftArgs(t *testing.T) {
	args := elementArgs(t, Shift{Var: MustVarName("var"), Offset: OffsetVar(MustVarName("offset"))})
	assert.Equal(t, []string{"SHIFT:var:offset"}, args)
}

func TestTextAlignArgs(t *testing.T) {
	args := elementArgs(t, AlignJustified)
	assert.Equal(t, []string{"TEXTALIGN:justified"}, args)

	_, err := TextAlign(0).graphArgs(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
