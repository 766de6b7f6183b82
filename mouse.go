package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-series/logging"
	"github.com/andareed/siftly-series/viewport"
)

// handleMouse forwards raw mouse events to the active tab's controller. Cell
// coordinates are mapped to the chart's plot area; a cell is one pixel.
func (m *model) handleMouse(msg tea.MouseMsg) {
	t := m.tab()
	if t == nil {
		return
	}
	vp := t.ctrl.Current()
	p := t.chart.Area.Pointer(vp, msg.X-chartOriginX, msg.Y-chartOriginY)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		t.ctrl.OnScroll(p, viewport.Up)
	case msg.Button == tea.MouseButtonWheelDown:
		t.ctrl.OnScroll(p, viewport.Down)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		t.ctrl.OnPress(p)
	case msg.Action == tea.MouseActionMotion:
		t.ctrl.OnMotion(p, float64(t.chart.Area.Width))
	case msg.Action == tea.MouseActionRelease:
		t.ctrl.OnRelease()
	default:
		return
	}

	if next := t.ctrl.Current(); next != vp {
		logging.Debugf("mouse %s at (%d,%d): %s -> %s", msg.String(), msg.X, msg.Y, vp, next)
		m.refreshView("mouse")
	}
}
