package tabs

import "github.com/charmbracelet/lipgloss"

// Catppuccin mocha, matching the shell theme.
var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5e0dc"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	cursorStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#313244"))
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("#313244")).Foreground(lipgloss.Color("#cdd6f4"))
	buttonActive = buttonStyle.Background(lipgloss.Color("#89b4fa")).Foreground(lipgloss.Color("#1e1e2e")).Bold(true)
)
