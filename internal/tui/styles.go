package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Status colors
	Regular   = lipgloss.Color("#4ECDC4") // Teal
	Overtime  = lipgloss.Color("#FFB347") // Orange
	Approved  = lipgloss.Color("#95E1A3") // Green
	Rejected  = lipgloss.Color("#FF6B6B") // Red
	Pending   = lipgloss.Color("#FFE66D") // Yellow
	TimerLive = lipgloss.Color("#95E1A3")

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	DayCardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	DayCardSelectedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(Primary).
				Padding(0, 1).
				Bold(true)

	EntryItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	EntryItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	RegularBarStyle  = lipgloss.NewStyle().Foreground(Regular)
	OvertimeBarStyle = lipgloss.NewStyle().Foreground(Overtime)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ErrorStyle = lipgloss.NewStyle().Foreground(Rejected)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// StatusIcon renders an approval status marker.
func StatusIcon(status string) string {
	switch status {
	case "APPROVED":
		return lipgloss.NewStyle().Foreground(Approved).Render("✓")
	case "REJECTED":
		return lipgloss.NewStyle().Foreground(Rejected).Render("✗")
	default:
		return lipgloss.NewStyle().Foreground(Pending).Render("•")
	}
}
