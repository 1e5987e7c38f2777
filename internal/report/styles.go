package report

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#00BFFF")
	colorWarn   = lipgloss.Color("#FFD700")
	colorMuted  = lipgloss.Color("#8C8C8C")
	colorWhite  = lipgloss.Color("#EEEEEE")
	colorBlue   = lipgloss.Color("#5B8DEF")
)

var (
	styleOperator = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	styleChannel = lipgloss.NewStyle().
			Foreground(colorAccent)

	stylePath = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleWarn = lipgloss.NewStyle().
			Foreground(colorWarn)

	styleHeader = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleCell = lipgloss.NewStyle().
			Padding(0, 1)

	styleDefaultChannel = styleCell.
				Foreground(colorBlue).
				Bold(true)
)
