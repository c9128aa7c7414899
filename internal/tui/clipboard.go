package tui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = func(s string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard available")
	}
	return clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))
}
