package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileCommands(t *testing.T) {
	dir := workspace(t)
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, dir, "b.md", "- B\n")

	created := obj(t, mustData(t, "--dir", dir, "new", "a"))
	if created["path"] != filepath.Join(dir, "a.md") {
		t.Fatalf("unexpected path: %v", created)
	}
	if stderr := mustFail(t, "--dir", dir, "new", "a.md"); !strings.Contains(stderr, "exists") {
		t.Fatalf("expected an exists error, got %s", stderr)
	}

	ents := list(t, mustData(t, "--dir", dir, "ls"))
	var names []string
	for _, e := range ents {
		names = append(names, obj(t, e)["name"].(string))
	}
	if strings.Join(names, ",") != "archive,a.md,b.md" {
		t.Fatalf("unexpected listing: %v", names)
	}

	mustData(t, "--dir", dir, "mv", "b.md", "archive/c")
	if _, err := os.Stat(filepath.Join(dir, "archive", "c.md")); err != nil {
		t.Fatalf("expected renamed file: %v", err)
	}
	mustFail(t, "--dir", dir, "mv", "a.md", "archive/c.md")

	mustData(t, "--dir", dir, "rm", "a.md")
	if _, err := os.Stat(filepath.Join(dir, "a.md")); !os.IsNotExist(err) {
		t.Fatalf("expected a.md to be gone, stat err: %v", err)
	}
	mustFail(t, "--dir", dir, "rm", "archive")
}

func TestFmt(t *testing.T) {
	dir := workspace(t)
	writeDoc(t, dir, "messy.md", "- A\n    - deep\n-   B\n")
	writeDoc(t, dir, "clean.md", "- A\n")

	_, stderr, err := runCLI(t, "", "--dir", dir, "fmt", "--check", "messy.md", "clean.md")
	if err == nil || !strings.Contains(string(stderr), "messy.md is not formatted") {
		t.Fatalf("expected --check failure, got err=%v stderr=%s", err, stderr)
	}
	if got := readDoc(t, dir, "messy.md"); got != "- A\n    - deep\n-   B\n" {
		t.Fatalf("--check must not write: %q", got)
	}

	res := list(t, mustData(t, "--dir", dir, "fmt", "--backup", "messy.md", "clean.md"))
	if len(res) != 2 || obj(t, res[0])["file"] != "clean.md" || obj(t, res[1])["changed"] != true {
		t.Fatalf("unexpected result: %v", res)
	}
	// The over-deep bullet stays body text of A.
	if got := readDoc(t, dir, "messy.md"); got != "- A\n    - deep\n- B\n" {
		t.Fatalf("unexpected formatted text: %q", got)
	}
	if got := readDoc(t, dir, "messy.md.bak"); got != "- A\n    - deep\n-   B\n" {
		t.Fatalf("unexpected backup: %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "clean.md.bak")); !os.IsNotExist(err) {
		t.Fatalf("unchanged files get no backup")
	}
}

func TestFmt_KeepsTextBeforeFirstBullet(t *testing.T) {
	dir := workspace(t)
	const notes = "# Notes\nIntro paragraph\n-   A\n"
	writeDoc(t, dir, "notes.md", notes)
	writeDoc(t, dir, "plain.md", "-  B\n")

	_, stderr, err := runCLI(t, "", "--dir", dir, "fmt", "notes.md", "plain.md")
	if err == nil || !strings.Contains(string(stderr), "notes.md has text before the first bullet") {
		t.Fatalf("expected lossy failure, got err=%v stderr=%s", err, stderr)
	}
	if got := readDoc(t, dir, "notes.md"); got != notes {
		t.Fatalf("lossy file was rewritten: %q", got)
	}
	if got := readDoc(t, dir, "plain.md"); got != "- B\n" {
		t.Fatalf("other files are still formatted, got %q", got)
	}

	res := list(t, mustData(t, "--dir", dir, "fmt", "--force", "notes.md"))
	if r := obj(t, res[0]); r["lossy"] != true || r["changed"] != true {
		t.Fatalf("unexpected result: %v", r)
	}
	if got := readDoc(t, dir, "notes.md"); got != "- A\n" {
		t.Fatalf("unexpected forced format: %q", got)
	}
}

func TestCopy_Stdout(t *testing.T) {
	dir := workspace(t)
	writeDoc(t, dir, "notes.md", "- A\n  - A1\n    body\n- B\n")

	stdout, _, err := runCLI(t, "", "--dir", dir, "copy", "notes.md", "1", "--stdout", "--indent", "  ")
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if string(stdout) != "A\n  A1\n    body\n" {
		t.Fatalf("unexpected text %q", stdout)
	}

	stdout, _, err = runCLI(t, "", "--dir", dir, "copy", "notes.md", "--stdout")
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if string(stdout) != "A\n\tA1\n\t\tbody\nB\n" {
		t.Fatalf("unexpected text %q", stdout)
	}
}
