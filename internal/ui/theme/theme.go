package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — warm, high-contrast for small terminals
var (
	Primary = lipgloss.Color("#F59E0B") // Amber
	Accent  = lipgloss.Color("#38BDF8") // Sky
	Success = lipgloss.Color("#4ADE80") // Green
	Error   = lipgloss.Color("#FB7185") // Rose
	Text    = lipgloss.Color("#F1F5F9") // White
	TextDim = lipgloss.Color("#64748B") // Slate
	BgCard  = lipgloss.Color("#1C1917") // Warm Black
	Border  = lipgloss.Color("#44403C") // Stone
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Accent)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
