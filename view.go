package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-series/logging"
	"github.com/andareed/siftly-series/viewport"
)

// tabsView is the line of series names above the chart.
func (m *model) tabsView(width int) string {
	var cells []string
	for i, t := range m.tabs {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}
		cells = append(cells, style.Render(t.name))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

// footerView renders the 2-line footer for the given width.
func (m *model) footerView(width int) string {
	st := footerState{Mode: m.ui.mode}
	t := m.tab()
	if t != nil {
		st.FileName = t.name
		st.Columns = t.columns
		st.Transform = t.transform.String()
		st.Dragging = t.ctrl.State() == viewport.Dragging
		st.Visible = t.chart.Rows
		st.TotalRows = t.frame.Len()
		st.StatusMessage = t.windowLabel()
	}
	if m.ui.mode == modeTimeWindow {
		st.ModeInput = fmt.Sprintf("%s → %s", m.ui.timeWindow.startInput.Value(), m.ui.timeWindow.endInput.Value())
	}
	if m.ui.noticeMsg != "" {
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	}
	if logging.IsDebugMode() && t != nil {
		st.Legend = modeHints(m.ui.mode) + fmt.Sprintf(" | dbg term=%dx%d area=%+v vp=%s",
			m.terminalWidth, m.terminalHeight, t.chart.Area, t.ctrl.Current())
	}
	return renderFooter(width, st, defaultFooterStyles())
}

func (m *model) drawerView(width int) string {
	inner := max(width-2, 1)
	h := m.drawerHeight(m.ui.mode)
	switch m.ui.mode {
	case modeTimeWindow:
		return m.timeWindowDrawerView(width)
	case modeTable:
		return drawerStyle.Width(inner).Height(h).MaxHeight(h + 2).Render(m.tableView(inner, h))
	case modeInfo:
		return drawerStyle.Width(inner).Height(h).Render(m.drawerPort.View())
	}
	return ""
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return lipgloss.Place(
			m.terminalWidth, m.terminalHeight,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color(overlayBGColor)),
		)
	}

	contentW := m.contentWidth()
	t := m.tab()
	chart := "no series loaded · press o to open a file"
	if t != nil {
		chart = t.chart.View
	}
	w, h := m.chartSize()
	bordered := chartStyle.Width(w).Height(h).MaxHeight(h + 2).Render(chart)

	parts := []string{m.tabsView(contentW), bordered}
	if m.ui.mode != modeView {
		parts = append(parts, m.drawerView(contentW))
	}
	parts = append(parts, m.footerView(contentW))
	return appstyle.Render(strings.Join(parts, "\n"))
}
