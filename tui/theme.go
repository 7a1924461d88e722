// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the palette for the terminal client. ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Indexed by todo priority 0-3
	PriorityColors [4]lipgloss.Color

	Done       lipgloss.Color
	Header     lipgloss.Color
	Border     lipgloss.Color
	HelpText   lipgloss.Color
	ErrorText  lipgloss.Color
	NoticeText lipgloss.Color
}

// PriorityColor returns the color for a priority; out of range is NormalText
func (theme Theme) PriorityColor(priority int) lipgloss.Color {
	if priority < 0 || priority >= len(theme.PriorityColors) {
		return theme.NormalText
	}
	return theme.PriorityColors[priority]
}

var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PriorityColors: [4]lipgloss.Color{
		lipgloss.Color("245"), // none
		lipgloss.Color("75"),  // low: blue
		lipgloss.Color("208"), // medium: orange
		lipgloss.Color("196"), // high: red
	},

	Done:       lipgloss.Color("114"),
	Header:     lipgloss.Color("255"),
	Border:     lipgloss.Color("240"),
	HelpText:   lipgloss.Color("241"),
	ErrorText:  lipgloss.Color("196"),
	NoticeText: lipgloss.Color("220"),
}
