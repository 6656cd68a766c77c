package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	goalCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	customCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	habitCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	emptyCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("236"))
)
