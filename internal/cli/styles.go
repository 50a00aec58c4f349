package cli

import "github.com/charmbracelet/lipgloss"

// Shared lipgloss styles for plan summaries and tables.
var (
	colorPrimary = lipgloss.Color("#0E7490") // Teal
	colorOK      = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorDanger  = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#6B7280") // Gray

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted)

	styleOK = lipgloss.NewStyle().
		Foreground(colorOK).
		Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	styleDanger = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)
