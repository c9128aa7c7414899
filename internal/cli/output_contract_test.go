package cli

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

func TestOutputContract_EnvelopeInEveryFormat(t *testing.T) {
	dir := workspace(t)
	writeDoc(t, dir, "notes.md", sampleDoc)
	mustData(t, "--dir", dir, "db", "import", "notes.md")

	suite := [][]string{
		{"parse", "notes.md"},
		{"stats", "notes.md"},
		{"filter", "notes.md", "milk"},
		{"find", "notes.md", "bread"},
		{"ls"},
		{"indent", "notes.md", "1", "--dry-run"},
		{"db", "ls"},
		{"db", "log", "notes"},
		{"config", "show"},
	}
	for _, format := range []string{"json", "edn", "yaml"} {
		for _, args := range suite {
			full := append([]string{"--dir", dir, "--format", format}, args...)
			stdout, stderr, err := runCLI(t, "", full...)
			if err != nil {
				t.Fatalf("vertebra %v failed: %v\nstderr:\n%s", full, err, stderr)
			}
			checkEnvelope(t, format, full, stdout)
		}
	}
}

func checkEnvelope(t *testing.T, format string, args []string, out []byte) {
	t.Helper()
	var env map[string]any
	switch format {
	case "json":
		if err := json.Unmarshal(out, &env); err != nil {
			t.Fatalf("%v: invalid json: %v\n%s", args, err, out)
		}
	case "yaml":
		if err := yaml.Unmarshal(out, &env); err != nil {
			t.Fatalf("%v: invalid yaml: %v\n%s", args, err, out)
		}
	case "edn":
		if !strings.HasPrefix(string(out), "{:data ") {
			t.Fatalf("%v: expected an edn map with :data first, got:\n%s", args, out)
		}
		return
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("%v: expected data key, got %v", args, env)
	}
	if meta, ok := env["meta"]; ok && meta != nil {
		if _, ok := meta.(map[string]any); !ok {
			t.Fatalf("%v: expected meta to be an object, got %T", args, meta)
		}
	}
}
