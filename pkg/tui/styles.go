package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
var (
	auroraViolet = lipgloss.Color("#C4B5FD") // Soft violet - primary accent
	skyBlue      = lipgloss.Color("#93C5FD") // Light blue - user turns
	mintGreen    = lipgloss.Color("#A8E6CF") // Soft mint green - agent turns
	mutedGray    = lipgloss.Color("#6B7280") // Muted gray - secondary text
	softRed      = lipgloss.Color("#FCA5A5") // Soft red - error turns
)

// Common Styles
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(auroraViolet).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	userStyle = lipgloss.NewStyle().
			Foreground(skyBlue).
			Bold(true)

	agentStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	pendingStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(softRed)

	emptyStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(auroraViolet)

	loadingStyle = lipgloss.NewStyle().
			Foreground(auroraViolet).
			Padding(0, 2)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(auroraViolet).
			Padding(0, 1)
)
