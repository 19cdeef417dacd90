package rrd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One baseline check that a fully populated GraphProps produces sane args
// in a stable order.
func TestGraphPropsEverythingSet(t *testing.T) {
	upper, lower := 100.0, 1.0
	asMin, asMax := 1.1, 2.2
	unitsExp := 3
	zoom := 3.3
	border := uint32(4)
	smoothing := uint32(1234)
	tabWidth := uint32(7)
	base := uint32(4)

	props := GraphProps{
		TimeRange: TimeRange{
			Start:       time.Unix(1_000, 0),
			End:         time.Unix(100_000, 0),
			StepSeconds: 60,
		},
		Labels: Labels{
			Title:         "Title",
			VerticalLabel: "VLabel",
		},
		Size: Size{
			Width:        1024,
			Height:       768,
			FullSizeMode: true,
			OnlyGraph:    true,
		},
		Limits: Limits{
			UpperLimit:   &upper,
			LowerLimit:   &lower,
			Rigid:        true,
			AllowShrink:  true,
			AltAutoscale: &AltAutoscale{Min: &asMin, Max: &asMax},
			NoGridFit:    true,
		},
		XAxis: XAxis{
			Grid: &XAxisGrid{
				BaseGridTime:   UnitSecond,
				BaseGridStep:   1,
				MajorGridTime:  UnitHour,
				MajorGridStep:  2,
				LabelsTime:     UnitMonth,
				LabelsStep:     3,
				LabelPlacement: 4,
				LabelFormat:    "label fmt",
			},
			WeekFormat: "weekfmt",
		},
		YAxis: YAxis{
			Grid:          &YAxisGrid{GridStep: 100, LabelFactor: 2},
			Formatter:     FormatterNumeric,
			Format:        "yaxisfmt",
			AltYGrid:      true,
			Logarithmic:   true,
			UnitsExponent: &unitsExp,
			UnitsLength:   4,
			UnitsSI:       true,
		},
		RightYAxis: &RightYAxis{
			Scale:     0.0,
			Shift:     0,
			Label:     "right y axis label",
			Formatter: FormatterNumeric,
			Format:    "right y axis fmt",
		},
		Legend: GraphLegend{
			NoLegend:         true,
			ForceRulesLegend: true,
			Position:         LegendNorth,
			Direction:        LegendBottomUp,
		},
		Misc: Misc{
			Colors:                  map[ColorTag]Color{ColorAxis: RGBA(0x01, 0x02, 0x03, 0x04)},
			GridDash:                &GridDash{On: 1, Off: 2},
			Border:                  &border,
			DynamicLabels:           true,
			Zoom:                    &zoom,
			Fonts:                   map[FontTag]FontParams{FontUnit: {Size: 11, Name: "FontyMcFontFace"}},
			FontRenderMode:          FontModeMono,
			FontSmoothingThreshold:  &smoothing,
			PangoMarkup:             true,
			GraphRenderMode:         GraphModeMono,
			SlopeMode:               true,
			Interlaced:              true,
			TabWidth:                &tabWidth,
			Base:                    &base,
			Watermark:               "watermark",
			UseNanForAllMissingData: true,
		},
	}

	args, err := props.appendArgs(nil)
	require.NoError(t, err)

	expected := []string{
		// time range
		"--start", "1000",
		"--end", "100000",
		"--step", "60",
		// labels
		"--title", "Title",
		"--vertical-label", "VLabel",
		// size
		"--width", "1024",
		"--height", "768",
		"--only-graph",
		"--full-size-mode",
		// limits
		"--upper-limit", "100",
		"--lower-limit", "1",
		"--rigid",
		"--allow-shrink",
		"--alt-autoscale",
		"--alt-autoscale-min", "1.1",
		"--alt-autoscale-max", "2.2",
		"--no-gridfit",
		// x axis
		"--x-grid", "SECOND:1:HOUR:2:MONTH:3:4:label fmt",
		"--week-fmt", "weekfmt",
		// y axis
		"--y-grid", "100:2",
		"--left-axis-formatter", "numeric",
		"--left-axis-format", "yaxisfmt",
		"--alt-y-grid",
		"--logarithmic",
		"--units-exponent", "3",
		"--units-length", "4",
		"--units", "si",
		// right y axis
		"--right-axis", "0:0",
		"--right-axis-label", "right y axis label",
		"--right-axis-formatter", "numeric",
		"--right-axis-format", "right y axis fmt",
		// legend
		"--no-legend",
		"--force-rules-legend",
		"--legend-position=north",
		"--legend-direction=bottomup",
		// misc
		"--color", "AXIS#01020304",
		"--grid-dash", "1:2",
		"--border", "4",
		"--dynamic-labels",
		"--zoom", "3.3",
		"--font", "UNIT:11:FontyMcFontFace",
		"--font-render-mode", "mono",
		"--font-smoothing-threshold", "1234",
		"--pango-markup",
		"--graph-render-mode", "mono",
		"--slope-mode",
		"--interlaced",
		"--tabwidth", "7",
		"--base", "4",
		"--watermark", "watermark",
		"--use-nan-for-all-missing-data",
	}
	assert.Equal(t, expected, args)
}

func TestGraphPropsZeroValue(t *testing.T) {
	args, err := GraphProps{}.appendArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestGraphPropsAxisGridNone(t *testing.T) {
	props := GraphProps{
		XAxis: XAxis{Grid: &XAxisGrid{None: true}},
		YAxis: YAxis{Grid: &YAxisGrid{None: true}},
	}
	args, err := props.appendArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"--x-grid", "none", "--y-grid", "none"}, args)
}

func TestGraphPropsUnitsExponentValidation(t *testing.T) {
	for _, exp := range []int{-18, -3, 0, 3, 18} {
		e := exp
		_, err := GraphProps{YAxis: YAxis{UnitsExponent: &e}}.appendArgs(nil)
		assert.NoError(t, err, "exp %d", exp)
	}
	for _, exp := range []int{-21, -1, 1, 2, 21} {
		e := exp
		_, err := GraphProps{YAxis: YAxis{UnitsExponent: &e}}.appendArgs(nil)
		assert.ErrorIs(t, err, ErrInvalidArgument, "exp %d", exp)
	}
}

func TestGraphPropsZoomValidation(t *testing.T) {
	for _, z := range []float64{0, -1} {
		zoom := z
		_, err := GraphProps{Misc: Misc{Zoom: &zoom}}.appendArgs(nil)
		assert.ErrorIs(t, err, ErrInvalidArgument, "zoom %v", z)
	}
}

func TestGraphPropsColorAndFontOrderStable(t *testing.T) {
	props := GraphProps{
		Misc: Misc{
			Colors: map[ColorTag]Color{
				ColorArrow:  RGB(1, 1, 1),
				ColorBack:   RGB(2, 2, 2),
				ColorCanvas: RGB(3, 3, 3),
			},
			Fonts: map[FontTag]FontParams{
				FontWatermark: {Size: 8},
				FontDefault:   {Size: 10},
			},
		},
	}
	args, err := props.appendArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"--color", "BACK#020202",
		"--color", "CANVAS#030303",
		"--color", "ARROW#010101",
		"--font", "DEFAULT:10",
		"--font", "WATERMARK:8",
	}, args)
}
