package main

import (
	"strings"
	"testing"
)

func TestRewriteDirectEditArgs(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"vertebra notes.md", "vertebra edit notes.md"},
		{"vertebra --dir /tmp notes.md", "vertebra --dir /tmp edit notes.md"},
		{"vertebra --dir=/tmp --pretty db:inbox", "vertebra --dir=/tmp --pretty edit db:inbox"},
		{"vertebra -- Notes.MD", "vertebra -- edit Notes.MD"},
		{"vertebra parse notes.md", "vertebra parse notes.md"},
		{"vertebra --format json stats notes.md", "vertebra --format json stats notes.md"},
		{"vertebra db:", "vertebra db:"},
		{"vertebra", "vertebra"},
	}
	for _, tc := range cases {
		got := strings.Join(rewriteDirectEditArgs(strings.Fields(tc.in)), " ")
		if got != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}
