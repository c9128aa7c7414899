package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

// workspace isolates config and returns a document directory.
func workspace(t *testing.T) string {
	t.Helper()
	t.Setenv("VERTEBRA_CONFIG_DIR", t.TempDir())
	t.Setenv("VERTEBRA_DIR", "")
	t.Setenv("VERTEBRA_FORMAT", "")
	t.Setenv("VERTEBRA_LOG_LEVEL", "")
	t.Setenv("VERTEBRA_TUI_GLYPHS", "")
	return t.TempDir()
}

func writeDoc(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readDoc(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(b)
}

func runCLI(t *testing.T, stdin string, args ...string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// mustData runs a command that must succeed and returns the envelope's data.
func mustData(t *testing.T, args ...string) any {
	t.Helper()
	stdout, stderr, err := runCLI(t, "", args...)
	if err != nil {
		t.Fatalf("vertebra %v failed: %v\nstderr:\n%s", args, err, stderr)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v\nstdout:\n%s", err, stdout)
	}
	data, ok := env["data"]
	if !ok {
		t.Fatalf("expected data key in envelope, got %v", env)
	}
	return data
}

func mustFail(t *testing.T, args ...string) string {
	t.Helper()
	_, stderr, err := runCLI(t, "", args...)
	if err == nil {
		t.Fatalf("vertebra %v: expected failure", args)
	}
	return string(stderr)
}

func obj(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T: %v", v, v)
	}
	return m
}

func list(t *testing.T, v any) []any {
	t.Helper()
	xs, ok := v.([]any)
	if !ok {
		t.Fatalf("expected array, got %T: %v", v, v)
	}
	return xs
}
