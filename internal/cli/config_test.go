package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitShow(t *testing.T) {
	workspace(t)
	cfgDir := os.Getenv("VERTEBRA_CONFIG_DIR")

	res := obj(t, mustData(t, "config", "init"))
	if res["path"] != filepath.Join(cfgDir, "config.toml") {
		t.Fatalf("unexpected path: %v", res)
	}
	if stderr := mustFail(t, "config", "init"); !strings.Contains(stderr, "already exists") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
	mustData(t, "config", "init", "--force")

	cfg := obj(t, mustData(t, "config", "show"))
	if cfg["backend"] != "file" || obj(t, cfg["history"])["maxEntries"] != float64(50) {
		t.Fatalf("unexpected config: %v", cfg)
	}
}

func TestConfig_WorkspaceDefault(t *testing.T) {
	dir := workspace(t)
	cfgDir := os.Getenv("VERTEBRA_CONFIG_DIR")
	toml := "workspace = \"" + filepath.ToSlash(dir) + "\"\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, dir, "notes.md", "- A\n")

	// No --dir: relative names resolve against the configured workspace.
	roots := list(t, mustData(t, "parse", "notes.md"))
	if len(roots) != 1 {
		t.Fatalf("unexpected tree: %v", roots)
	}
}

func TestEdit_NothingToOpen(t *testing.T) {
	workspace(t)
	if stderr := mustFail(t, "edit"); !strings.Contains(stderr, "no document to open") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestRoot_UnknownFormat(t *testing.T) {
	workspace(t)
	_, _, err := runCLI(t, "", "--format", "xml", "ls")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}
