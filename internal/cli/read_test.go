package cli

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleDoc = "- Groceries\n  - Milk\n    two litres\n  - Bread\n- Work\n  \\- not a bullet\n"

func TestParse(t *testing.T) {
	dir := workspace(t)
	writeDoc(t, dir, "notes.md", sampleDoc)

	roots := list(t, mustData(t, "--dir", dir, "parse", "notes.md"))
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	groceries := obj(t, roots[0])
	kids := list(t, groceries["children"])
	if groceries["text"] != "Groceries" || len(kids) != 2 {
		t.Fatalf("unexpected first root: %v", groceries)
	}
	if milk := obj(t, kids[0]); milk["content"] != "two litres" || milk["level"] != float64(1) {
		t.Fatalf("unexpected child: %v", milk)
	}
	if work := obj(t, roots[1]); work["content"] != "- not a bullet" {
		t.Fatalf("escaped body not decoded: %v", work)
	}
}

func TestParse_Stdin(t *testing.T) {
	workspace(t)
	stdout, stderr, err := runCLI(t, "- A\n  - B\n", "parse", "-")
	if err != nil {
		t.Fatalf("parse failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(string(stdout), `"text":"B"`) {
		t.Fatalf("unexpected output: %s", stdout)
	}
}

func TestParse_YAMLFormat(t *testing.T) {
	dir := workspace(t)
	writeDoc(t, dir, "notes.md", "- A\n")
	stdout, stderr, err := runCLI(t, "", "--dir", dir, "--format", "yml", "parse", "notes.md")
	if err != nil {
		t.Fatalf("parse failed: %v\n%s", err, stderr)
	}
	var env struct {
		Data []struct {
			Text string `yaml:"text"`
		} `yaml:"data"`
	}
	if err := yaml.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal yaml: %v\n%s", err, stdout)
	}
	if len(env.Data) != 1 || env.Data[0].Text != "A" {
		t.Fatalf("unexpected yaml: %s", stdout)
	}
}

func TestParse_MissingFile(t *testing.T) {
	dir := workspace(t)
	if stderr := mustFail(t, "--dir", dir, "parse", "nope.md"); !strings.Contains(stderr, "does not exist") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestStats(t *testing.T) {
	dir := workspace(t)
	writeDoc(t, dir, "notes.md", "- one two\n  three\n- four\n")

	data := obj(t, mustData(t, "--dir", dir, "stats", "notes.md"))
	total := obj(t, data["total"])
	if total["words"] != float64(4) || data["nodes"] != float64(2) {
		t.Fatalf("unexpected stats: %v", data)
	}
	roots := list(t, data["roots"])
	if first := obj(t, roots[0]); first["path"] != "1" || obj(t, first["stats"])["chars"] != float64(len("one two three")) {
		t.Fatalf("unexpected root stats: %v", first)
	}
}

func TestFilter(t *testing.T) {
	dir := workspace(t)
	writeDoc(t, dir, "notes.md", sampleDoc)

	data := obj(t, mustData(t, "--dir", dir, "filter", "notes.md", "LITRES"))
	matched := list(t, data["matched"])
	if len(matched) != 1 || obj(t, matched[0])["path"] != "1.1" {
		t.Fatalf("unexpected matches: %v", matched)
	}
	visible := list(t, data["visible"])
	if len(visible) != 2 || visible[0] != "1" || visible[1] != "1.1" {
		t.Fatalf("unexpected visible paths: %v", visible)
	}

	data = obj(t, mustData(t, "--dir", dir, "filter", "notes.md", "  "))
	if got := len(list(t, data["visible"])); got != 4 {
		t.Fatalf("blank query should show all 4 nodes, got %d", got)
	}
}

func TestFind(t *testing.T) {
	dir := workspace(t)
	writeDoc(t, dir, "notes.md", sampleDoc)

	if ref := obj(t, mustData(t, "--dir", dir, "find", "notes.md", "  \\- NOT a bullet ")); ref["path"] != "2" {
		t.Fatalf("unexpected match: %v", ref)
	}
	if stderr := mustFail(t, "--dir", dir, "find", "notes.md", "cheese"); !strings.Contains(stderr, "not found") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}
