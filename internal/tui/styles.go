package tui

import "github.com/charmbracelet/lipgloss"

// ANSI 256 palette indexes.
var (
	colorAccent = lipgloss.Color("12")
	colorPerson = lipgloss.Color("10")
	colorPick   = lipgloss.Color("11")
	colorDim    = lipgloss.Color("240")
	colorFrame  = lipgloss.Color("238")
)

var (
	styleInputPrompt = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleInput       = styleInputPrompt

	styleListSelected = lipgloss.NewStyle().Foreground(colorPick).Bold(true)
	styleSessionID    = lipgloss.NewStyle().Foreground(colorAccent)
	styleSender       = lipgloss.NewStyle().Foreground(colorPerson)
	styleDetail       = lipgloss.NewStyle().Foreground(colorDim)

	stylePanelBorder  = frame(colorFrame)
	styleActiveBorder = frame(colorAccent)

	styleStatusBar = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
)

func frame(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c)
}
