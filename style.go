package main

import "github.com/charmbracelet/lipgloss"

const (
	rowTextFGColor         = "#c0c0c0"
	rowSelectedTextFGColor = "#e0e0e0"
	rowSelectedBGColor     = "#3a3a3a"
	overlayBGColor         = "236"
)

var (
	appstyle = lipgloss.NewStyle().Margin(1, 2)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#ff9f1c"))

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	chartStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))

	drawerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 0).BorderLeft(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Layout offsets of the chart inside the terminal: appstyle margin, the tab
// line and the chart border.
const (
	chartOriginX = 2 + 1
	chartOriginY = 1 + 1 + 1
)
