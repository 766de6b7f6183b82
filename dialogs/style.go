package dialogs

import "github.com/charmbracelet/lipgloss"

const overlayBG = "236"

var (
	box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("252")).
		BorderBackground(lipgloss.Color(overlayBG)).
		Padding(1, 2).
		Width(60)

	hint   = lipgloss.NewStyle().Faint(true)
	title  = lipgloss.NewStyle().Bold(true)
	cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9f1c"))
)
