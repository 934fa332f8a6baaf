package tui

import "github.com/charmbracelet/lipgloss"

var (
	red = lipgloss.Color("#ff0000")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(red)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	focusStyle   = lipgloss.NewStyle().Foreground(red)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	helpStyle    = mutedStyle.Italic(true)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("238"))
	activeButtonStyle = buttonStyle.Background(red)
)
