package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{DebugLevel, zapcore.DebugLevel},
		{InfoLevel, zapcore.InfoLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		if got := toZapLevel(tc.in); got != tc.want {
			t.Errorf("toZapLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeLevel(t *testing.T) {
	if got := normalizeLevel("  WARN "); got != WarnLevel {
		t.Fatalf("normalizeLevel = %q, want %q", got, WarnLevel)
	}
}

func TestGet_ReturnsSingleton(t *testing.T) {
	a := Get(DebugLevel)
	b := Get(ErrorLevel)
	if a != b {
		t.Fatalf("expected the same logger instance")
	}
}

func TestNop_With(t *testing.T) {
	l := Nop().With("relay", 1)
	if l == nil || l.SugaredLogger == nil {
		t.Fatalf("With returned an unusable logger")
	}
	l.Infow("discarded", "k", "v")
}
