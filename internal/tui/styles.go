package tui

import "github.com/charmbracelet/lipgloss"

// Style definitions for the board UI
// These styles follow Lipgloss conventions for composable terminal styling

var (
	highlight = lipgloss.Color("#874BFD")
	subtle    = lipgloss.Color("#D9DCCF")
	danger    = lipgloss.Color("#FF5F56")

	// TitleStyle renders the header line
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			Padding(0, 1)

	// ColumnStyle defines the appearance of board columns
	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(30)

	// ColumnTitleStyle renders a column heading with the ticket count
	ColumnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(subtle)

	// CardStyle defines the appearance of individual tickets as cards
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1).
			Width(26)

	// SelectedCardStyle highlights the ticket under the cursor
	SelectedCardStyle = CardStyle.
				BorderForeground(highlight).
				Bold(true)

	// GrabbedCardStyle marks the ticket being carried in move mode
	GrabbedCardStyle = CardStyle.
				BorderForeground(lipgloss.Color("220")).
				Bold(true)

	// NotificationStyle renders the error/info line under the board
	NotificationStyle = lipgloss.NewStyle().
				Foreground(danger).
				Padding(0, 1)

	// HelpStyle renders the key hints in the footer
	HelpStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1)

	// FormBoxStyle wraps the ticket dialog
	FormBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1, 2)

	// SuggestionStyle renders the assignee suggestion inside the form
	SuggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)
