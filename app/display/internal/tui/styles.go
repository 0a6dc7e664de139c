package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#2563eb")
	colorMuted   = lipgloss.Color("#6b7280")
	colorError   = lipgloss.Color("#dc2626")
	colorSpinner = lipgloss.Color("#f59e0b")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	badgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3730a3")).Background(lipgloss.Color("#eef2ff")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true)
)
