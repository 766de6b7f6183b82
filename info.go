package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/andareed/siftly-series/transform"
)

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// infoLines describes the visible rows of t followed by its ingestion report.
func infoLines(t *seriesTab) []string {
	lines := []string{
		headerStyle.Render(fmt.Sprintf("%s  %s", t.name, t.windowLabel())),
		fmt.Sprintf("Source: %s", t.path),
		fmt.Sprintf("Transform: %s", t.transform),
		"",
	}

	visible := t.derived.Rows(t.visibleRows())
	stats, err := transform.Describe(visible, visible.NumericColumnNames())
	switch {
	case err != nil:
		lines = append(lines, errorStyle.Render(err.Error()))
	case len(stats) == 0:
		lines = append(lines, "No numeric columns selected")
	default:
		lines = append(lines, headerStyle.Render(fmt.Sprintf("%-16s %7s %10s %10s %10s %10s %10s %10s %10s",
			"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max")))
		for _, s := range stats {
			lines = append(lines, fmt.Sprintf("%-16s %7d %10s %10s %10s %10s %10s %10s %10s",
				s.Column, s.Count, num(s.Mean), num(s.Std), num(s.Min), num(s.Q25), num(s.Median), num(s.Q75), num(s.Max)))
		}
	}

	lines = append(lines, "", headerStyle.Render("Ingestion"))
	lines = append(lines, t.frame.Report.Lines()...)
	return lines
}

func (m *model) syncInfo() {
	t := m.tab()
	if t == nil {
		return
	}
	w := m.contentWidth() - 1
	m.drawerPort.Width = w
	m.drawerPort.Height = m.drawerHeight(modeInfo)
	m.drawerPort.SetContent(wordwrap.String(strings.Join(infoLines(t), "\n"), w))
}

func (m *model) handleInfoKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.RowDown):
		m.drawerPort.LineDown(1)
	case key.Matches(msg, Keys.RowUp):
		m.drawerPort.LineUp(1)
	case key.Matches(msg, Keys.PageDown):
		m.drawerPort.HalfViewDown()
	case key.Matches(msg, Keys.PageUp):
		m.drawerPort.HalfViewUp()
	default:
		return false, nil
	}
	return true, nil
}
