package main

import (
	"os"
	"strings"

	"vertebra/internal/cli"
)

func isDocumentRef(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "db:") {
		return len(s) > len("db:")
	}
	return strings.HasSuffix(strings.ToLower(s), ".md")
}

// rewriteDirectEditArgs turns `vertebra notes.md` into `vertebra edit notes.md`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first, so the first positional
// token is searched for rather than assumed to be argv[1].
func rewriteDirectEditArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":        true,
		"--config-dir": true,
		"--format":     true,
		"--log-level":  true,
		"--backend":    true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isDocumentRef(argv[i+1]) {
				return insertEdit(argv, i+1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isDocumentRef(a) {
			return insertEdit(argv, i)
		}
		return argv
	}
	return argv
}

func insertEdit(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+1)
	out = append(out, argv[:at]...)
	out = append(out, "edit")
	return append(out, argv[at:]...)
}

func main() {
	os.Args = rewriteDirectEditArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
