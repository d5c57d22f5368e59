package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// UI styles definitions
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#01B4E4")).
			PaddingLeft(2).
			PaddingRight(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8A8A8"))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90CEA1"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	DropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#01B4E4")).
			Padding(0, 1)
)
