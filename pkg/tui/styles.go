package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var overlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

var overlayTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

var seatStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("33")).
	Padding(0, 1)

var seatCursorStyle = seatStyle.
	BorderForeground(lipgloss.Color("205")).
	Bold(true).
	Reverse(true)

var seatBookedStyle = seatStyle.
	BorderForeground(lipgloss.Color("240")).
	Foreground(lipgloss.Color("240")).
	Strikethrough(true)

// emphasize adapts the variadic lipgloss Render to markup.Emphasis.
func emphasize(s string) string {
	return boldStyle.Render(s)
}
