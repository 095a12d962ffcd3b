// ABOUTME: Color palette for bubbles and chrome
// ABOUTME: Hex colors mirror the web client's tones; lipgloss downsamples them per terminal

package render

import "github.com/charmbracelet/lipgloss"

// Tone is the color set of one bubble kind.
type Tone struct {
	Foreground lipgloss.Color
	Background lipgloss.Color
	Border     lipgloss.Color
}

// Theme defines the colors of the terminal client.
type Theme struct {
	User           Tone
	Bot            Tone
	System         Tone
	CategoryPrompt Tone
	QuickPrompt    Tone

	Accent    lipgloss.Color
	FaintText lipgloss.Color
}

// DefaultTheme is the built-in palette.
var DefaultTheme = Theme{
	User:           Tone{Foreground: "#FFFFFF", Background: "#4D63F4", Border: "#4D63F4"},
	Bot:            Tone{Foreground: "#0F172A", Background: "#F1F5F9", Border: "#E2E8F0"},
	System:         Tone{Foreground: "#78350F", Background: "#FFFBEB", Border: "#FDE68A"},
	CategoryPrompt: Tone{Foreground: "#0F172A", Background: "#FFFFFF", Border: "#E2E8F0"},
	QuickPrompt:    Tone{Foreground: "#16204B", Background: "#EFF3FF", Border: "#DFE7FF"},

	Accent:    "#4D63F4",
	FaintText: "#64748B",
}
