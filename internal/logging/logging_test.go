package logging

import (
	"bytes"
	"strings"
	"testing"

	"sphere-ca/internal/core"
)

var _ core.Logger = (*Logger)(nil)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"Warning": LevelWarn,
		"error":   LevelError,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter("warn", &buf)
	l.Debugf("hidden %d", 1)
	l.Infof("hidden %d", 2)
	l.Warnf("shown %d", 3)
	l.Errorf("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("messages below warn leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") || !strings.Contains(out, "[ERROR] shown 4") {
		t.Fatalf("expected warn and error lines, got %q", out)
	}
}
