package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorYellow = lipgloss.Color("#F1FA8C")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorWhite  = lipgloss.Color("#F8F8F2")
	colorGray   = lipgloss.Color("#6272A4")
	colorPanel  = lipgloss.Color("#44475A")
	colorGreen  = lipgloss.Color("#50FA7B")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	selectedStyle = lipgloss.NewStyle().Background(colorPanel).Foreground(colorWhite)
	helpStyle     = lipgloss.NewStyle().Foreground(colorGray)
	dimStyle      = lipgloss.NewStyle().Foreground(colorGray)
)
