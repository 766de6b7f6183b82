package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-series/dialogs"
	"github.com/andareed/siftly-series/transform"
	"github.com/andareed/siftly-series/viewport"
)

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ui.mode {
	case modeTimeWindow:
		return m.handleTimeWindowKey(msg)
	case modeTable:
		if handled, cmd := m.handleTableKey(msg); handled {
			return m, cmd
		}
	case modeInfo:
		if handled, cmd := m.handleInfoKey(msg); handled {
			return m, cmd
		}
	}
	return m.handleViewModeKey(msg)
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.OpenHelp):
		return m, m.openDialog(dialogs.NewHelpDialog(Keys.HelpGroups()))
	case key.Matches(msg, Keys.Open):
		return m, m.openDialog(dialogs.NewPrompt(dialogs.PurposeOpen, "", m.lastDir))
	case key.Matches(msg, Keys.Close):
		if m.ui.mode != modeView {
			m.setMode(modeView)
		}
		return m, nil
	}

	t := m.tab()
	if t == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.NextTab):
		m.switchTab(1)
	case key.Matches(msg, Keys.PrevTab):
		m.switchTab(-1)
	case key.Matches(msg, Keys.ZoomIn):
		t.ctrl.ZoomCenter(viewport.Up)
		m.refreshView("zoom-in")
	case key.Matches(msg, Keys.ZoomOut):
		t.ctrl.ZoomCenter(viewport.Down)
		m.refreshView("zoom-out")
	case key.Matches(msg, Keys.PanLeft):
		m.panCells(-m.cfg.Viewport.PanStepCells)
	case key.Matches(msg, Keys.PanRight):
		m.panCells(m.cfg.Viewport.PanStepCells)
	case key.Matches(msg, Keys.Reset):
		t.ctrl.Reset()
		m.refreshView("reset")
	case key.Matches(msg, Keys.TimeWindow):
		m.openTimeWindowDrawer()
	case key.Matches(msg, Keys.Table):
		m.toggleDrawer(modeTable)
	case key.Matches(msg, Keys.Info):
		m.toggleDrawer(modeInfo)
	case key.Matches(msg, Keys.Columns):
		return m, m.openDialog(dialogs.NewPicker(dialogs.PickColumns, "Columns of "+t.name,
			t.frame.NumericColumnNames(), t.columns, true))
	case key.Matches(msg, Keys.Transform):
		names := make([]string, 0, len(transform.Kinds()))
		for _, k := range transform.Kinds() {
			names = append(names, k.String())
		}
		return m, m.openDialog(dialogs.NewPicker(dialogs.PickTransform, "Transform",
			names, []string{t.transform.String()}, false))
	case key.Matches(msg, Keys.Save):
		return m, m.openDialog(dialogs.NewPrompt(dialogs.PurposeSave, t.name+".session.json", m.lastDir))
	case key.Matches(msg, Keys.Export):
		return m, m.openDialog(dialogs.NewPrompt(dialogs.PurposeExport, t.name+"-view.csv", m.lastDir))
	case key.Matches(msg, Keys.WritePNG):
		return m, m.openDialog(dialogs.NewPrompt(dialogs.PurposePNG, t.name+".png", m.lastDir))
	case key.Matches(msg, Keys.Copy):
		return m, m.copySummary()
	}
	return m, nil
}

// panCells pans the active chart by a number of cells; positive moves the
// view right.
func (m *model) panCells(cells int) {
	t := m.tab()
	if t == nil || t.chart.Area.Width <= 0 {
		return
	}
	t.ctrl.PanPixels(float64(cells), float64(t.chart.Area.Width))
	m.refreshView("pan")
}

func (m *model) toggleDrawer(md mode) {
	if m.ui.mode == md {
		m.setMode(modeView)
		return
	}
	m.drawerPort.GotoTop()
	m.setMode(md)
}
