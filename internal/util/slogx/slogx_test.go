package slogx

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	} {
		got, err := ParseLevel(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("parse %q: expected = %v, got = %v", tc.in, tc.want, got)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("no error for bad level")
	}
}

func TestOrDiscard(t *testing.T) {
	if !IsDiscard(OrDiscard(nil)) {
		t.Errorf("nil logger must become discard")
	}
	l := slog.Default()
	if OrDiscard(l) != l {
		t.Errorf("non-nil logger must be kept")
	}
}
