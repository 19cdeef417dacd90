package rrd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorNoAlpha(t *testing.T) {
	c, err := ParseColor("#012345")
	require.NoError(t, err)
	assert.Equal(t, RGB(0x01, 0x23, 0x45), c)
	assert.Equal(t, "#012345", c.String())
}

func TestParseColorWithAlpha(t *testing.T) {
	c, err := ParseColor("#01234567")
	require.NoError(t, err)
	assert.Equal(t, RGBA(0x01, 0x23, 0x45, 0x67), c)
	assert.Equal(t, "#01234567", c.String())
}

func TestParseColorErrors(t *testing.T) {
	for _, s := range []string{
		"#0000ZZ",    // invalid hex
		"FFFFFF",     // no prefix
		"#FFFFF",     // too short
		"#FFFFFFF",   // between rgb and rgba
		"#FFFFFFFFF", // too long
		"",
	} {
		_, err := ParseColor(s)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %q", s)
	}
}

func TestColorStringUppercase(t *testing.T) {
	assert.Equal(t, "#FF00AA", RGB(0xFF, 0x00, 0xAA).String())
	assert.Equal(t, "#FF00AA80", RGBA(0xFF, 0x00, 0xAA, 0x80).String())
}

func TestImageFormatArgs(t *testing.T) {
	for format, name := range map[ImageFormat]string{
		PNG: "PNG",
		SVG: "SVG",
		EPS: "EPS",
		PDF: "PDF",
	} {
		args, err := format.appendArgs(nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"--imgformat", name}, args)
	}
}

func TestImageFormatInvalid(t *testing.T) {
	for _, format := range []ImageFormat{-1, PDF + 1, 99} {
		_, err := format.appendArgs(nil)
		assert.ErrorIs(t, err, ErrInvalidArgument, "format %d", int(format))
	}
}
