package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminals/fonts render the Unicode twisties poorly, so an ASCII set
// can be selected with VERTEBRA_TUI_GLYPHS=ascii or tui.glyphs in config.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference picks the glyph set from the environment, falling
// back to the configured value. Unknown values are ignored.
func applyGlyphPreference(configured string) {
	v := strings.TrimSpace(os.Getenv("VERTEBRA_TUI_GLYPHS"))
	if v == "" {
		v = configured
	}
	if gs, ok := parseGlyphSet(v); ok {
		setGlyphs(gs)
	}
}

func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	default:
		return 0, false
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphTwistyCollapsed() string {
	if glyphs() == glyphSetASCII {
		return "+"
	}
	return "▸"
}

func glyphTwistyExpanded() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "▾"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

// glyphBody marks a node that has body text.
func glyphBody() string {
	if glyphs() == glyphSetASCII {
		return "[...]"
	}
	return "¶"
}

func glyphSeparator() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "·"
}
