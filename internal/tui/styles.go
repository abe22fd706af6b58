package tui

import "github.com/charmbracelet/lipgloss"

const cellWidth = 6

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	StatsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	cardBase = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder())

	HiddenCardStyle = cardBase.
			BorderForeground(lipgloss.Color("#626262")).
			Foreground(lipgloss.Color("#626262"))

	RevealedCardStyle = cardBase.
				BorderForeground(lipgloss.Color("#FFD700")).
				Foreground(lipgloss.Color("#FAFAFA"))

	MatchedCardStyle = cardBase.
				BorderForeground(lipgloss.Color("#04B575")).
				Foreground(lipgloss.Color("#04B575"))

	MismatchCardStyle = cardBase.
				BorderForeground(lipgloss.Color("#FF6B6B")).
				Foreground(lipgloss.Color("#FF6B6B"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)
