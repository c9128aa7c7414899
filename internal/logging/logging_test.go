package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":       zapcore.WarnLevel,
		"debug":  zapcore.DebugLevel,
		" INFO ": zapcore.InfoLevel,
		"error":  zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewTo_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vertebra.log")
	log, err := NewTo("info", false, path)
	if err != nil {
		t.Fatalf("NewTo: %v", err)
	}
	log.Debug("hidden")
	log.Info("visible")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "visible") || strings.Contains(string(b), "hidden") {
		t.Fatalf("unexpected log contents: %q", b)
	}
}
