package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LevelWarn)

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("messages below WARN should be filtered, got: %q", out)
	}
	if !strings.Contains(out, "WARN warn 3") {
		t.Fatalf("expected warn message, got: %q", out)
	}
	if !strings.Contains(out, "ERROR error 4") {
		t.Fatalf("expected error message, got: %q", out)
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelError: "ERROR",
		LevelWarn:  "WARN",
		LevelInfo:  "INFO",
		LevelDebug: "DEBUG",
		Level(99):  "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestDiscardIsSilent(t *testing.T) {
	// Must not panic and must not write anywhere.
	Discard.Errorf("e")
	Discard.Warnf("w")
	Discard.Infof("i")
	Discard.Debugf("d")
}

func TestIsNil(t *testing.T) {
	if !IsNil(nil) {
		t.Fatal("nil interface should be nil")
	}
	var typed *DefaultLogger
	if !IsNil(typed) {
		t.Fatal("typed-nil should be nil")
	}
	if IsNil(NewDefaultLogger(LevelError)) {
		t.Fatal("real logger should not be nil")
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) != Discard {
		t.Fatal("nil logger should fall back to Discard")
	}
	l := NewDefaultLogger(LevelInfo)
	if OrDiscard(l) != l {
		t.Fatal("usable logger should be returned unchanged")
	}
}
