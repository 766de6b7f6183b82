package main

type mode int

const (
	modeView mode = iota
	modeTimeWindow
	modeTable
	modeInfo
)

func modeLabel(md mode) string {
	switch md {
	case modeTimeWindow:
		return "WINDOW"
	case modeTable:
		return "TABLE"
	case modeInfo:
		return "INFO"
	default:
		return "PLOT"
	}
}

func modeHints(md mode) string {
	switch md {
	case modeTimeWindow:
		return "enter apply · ctrl+r full range · tab next · esc close"
	case modeTable:
		return "j/k row · y copy row · d/esc close"
	case modeInfo:
		return "j/k scroll · i/esc close"
	default:
		return "? help · wheel/+/- zoom · drag/←/→ pan · 0 reset · t window · c columns · m transform"
	}
}

// drawerHeight is the content height of the drawer the mode opens, without
// its border.
func (m *model) drawerHeight(md mode) int {
	switch md {
	case modeTimeWindow:
		return timeWindowDrawerContentHeight
	case modeTable, modeInfo:
		return clamp(m.terminalHeight/3, 4, 14)
	default:
		return 0
	}
}
