package tui

import (
	"reflect"
	"testing"
)

func TestSplitShellWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"vim", []string{"vim"}},
		{"  code   --wait ", []string{"code", "--wait"}},
		{"vim -u 'foo bar'", []string{"vim", "-u", "foo bar"}},
		{`vim -c "set ft=markdown"`, []string{"vim", "-c", "set ft=markdown"}},
		{`vim\ -u\ foo`, []string{"vim -u foo"}},
		{`emacs ''`, []string{"emacs", ""}},
		{`nano "a\"b"`, []string{"nano", `a"b`}},
	}

	for _, tt := range tests {
		got, err := splitShellWords(tt.in)
		if err != nil {
			t.Fatalf("splitShellWords(%q): %v", tt.in, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("splitShellWords(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := splitShellWords(`vim 'oops`); err == nil {
		t.Fatalf("expected unterminated quote error")
	}
}
