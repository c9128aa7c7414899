package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors must stay readable on both light and dark terminal backgrounds, so
// adaptive colors are used throughout.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorAccent     = ac("27", "62")
	colorMatch      = ac("130", "214")
	colorError      = ac("160", "203")
	colorStatusBg   = ac("252", "236")
	colorStatusFg   = ac("235", "252")
)

var (
	styleRow      = lipgloss.NewStyle()
	styleSelected = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true)
	styleMatch    = lipgloss.NewStyle().Foreground(colorMatch)
	styleTwisty   = lipgloss.NewStyle().Foreground(colorMuted)
	styleBody     = lipgloss.NewStyle().Foreground(colorMuted)
	styleDragSrc  = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)
	styleStatus   = lipgloss.NewStyle().Background(colorStatusBg).Foreground(colorStatusFg)
	styleMessage  = lipgloss.NewStyle().Foreground(colorAccent)
	styleError    = lipgloss.NewStyle().Foreground(colorError)
	stylePrompt   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

// faintIfDark applies faint styling only on dark backgrounds; faint text on
// light terminals often becomes illegible.
func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// applyColorPreference drops to plain ASCII output when colors are disabled
// in config or through NO_COLOR.
func applyColorPreference(noColor bool) {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
