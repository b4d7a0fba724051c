package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorBase    = lipgloss.Color("#1B1A17")
	ColorSurface = lipgloss.Color("#2B2822")
	ColorMuted   = lipgloss.Color("#8C8573")
	ColorText    = lipgloss.Color("#E8E2D0")
	ColorGold    = lipgloss.Color("#D4AF37")
	ColorGreen   = lipgloss.Color("#a6e3a1")
	ColorRed     = lipgloss.Color("#f38ba8")
	ColorYellow  = lipgloss.Color("#f9e2af")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorGold).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorBase).
			Background(ColorGold).
			Bold(true).
			Padding(0, 1)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorGold)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorSurface).
			Padding(0, 2).
			MarginRight(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorGold).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Padding(0, 1)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "confirmed":
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case "pending":
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case "cancelled":
		return lipgloss.NewStyle().Foreground(ColorRed)
	}
	return NormalRowStyle
}
