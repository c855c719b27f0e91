package main

import "github.com/charmbracelet/lipgloss"

// Styles used across the CLI commands
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2775CA")). // USDC blue
			Bold(true).
			Padding(1, 0)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3FB950")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6347")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8B949E")).
			Width(18)
)

func keyValue(label, value string) string {
	return labelStyle.Render(label) + value
}
