package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func (m *model) syncTable() {
	t := m.tab()
	if t == nil {
		return
	}
	m.ui.table.rows = t.visibleRows()
	m.ui.table.cursor = clamp(m.ui.table.cursor, 0, max(len(m.ui.table.rows)-1, 0))
}

func (m *model) handleTableKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	tbl := &m.ui.table
	page := max(m.drawerHeight(modeTable)-1, 1)
	switch {
	case key.Matches(msg, Keys.RowDown):
		tbl.cursor++
	case key.Matches(msg, Keys.RowUp):
		tbl.cursor--
	case key.Matches(msg, Keys.PageDown):
		tbl.cursor += page
	case key.Matches(msg, Keys.PageUp):
		tbl.cursor -= page
	case key.Matches(msg, Keys.Copy):
		return true, m.copyCursorRow()
	default:
		return false, nil
	}
	tbl.cursor = clamp(tbl.cursor, 0, max(len(tbl.rows)-1, 0))
	return true, nil
}

func (m *model) copyCursorRow() tea.Cmd {
	t := m.tab()
	tbl := m.ui.table
	if t == nil || len(tbl.rows) == 0 {
		return nil
	}
	row := frameRow(t.derived, tbl.rows[tbl.cursor], len(t.derived.ColumnNames()))
	return m.copyText(row.String(), "row")
}

// tableView renders the rows around the cursor that fit in height lines,
// below a header line.
func (m *model) tableView(width, height int) string {
	t := m.tab()
	tbl := m.ui.table
	if t == nil {
		return ""
	}
	gutter := len(fmt.Sprintf("%d", max(len(tbl.rows), 1))) + 1
	cols := layoutColumns(tableColumns(t.derived), width-gutter)

	var header []string
	for _, c := range cols {
		header = append(header, cellStyle.Width(c.Width).MaxHeight(1).Render(c.Name))
	}
	lines := []string{strings.Repeat(" ", gutter) + headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, header...))}

	if len(tbl.rows) == 0 {
		return strings.Join(append(lines, "  no rows in view"), "\n")
	}

	body := max(height-1, 1)
	start := clamp(tbl.cursor-body/2, 0, max(len(tbl.rows)-body, 0))
	end := min(start+body, len(tbl.rows))
	ncols := len(cols) - 1
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRowAt(t, i, ncols, gutter, cols))
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderRowAt(t *seriesTab, i, ncols, gutter int, cols []ColumnMeta) string {
	selected := i == m.ui.table.cursor
	rowPrefix := bgSeq(lipgloss.Color("")) + fgSeq(lipgloss.Color(rowTextFGColor))
	if selected {
		rowPrefix = bgSeq(lipgloss.Color(rowSelectedBGColor)) + fgSeq(lipgloss.Color(rowSelectedTextFGColor))
	}
	rowSuffix := termenv.CSI + "0m"

	row := frameRow(t.derived, m.ui.table.rows[i], ncols)
	content := row.Render(cellStyle, cols)
	number := fmt.Sprintf("%*d ", gutter-1, i+1)
	return rowPrefix + number + restoreRowStyleAfterReset(content, rowPrefix) + rowSuffix
}

// restoreRowStyleAfterReset re-applies the row colours after every reset
// emitted by an inner style.
func restoreRowStyleAfterReset(s string, rowPrefix string) string {
	if rowPrefix == "" {
		return s
	}
	reset := termenv.CSI + "0m"
	if !strings.Contains(s, reset) {
		return s
	}
	return strings.ReplaceAll(s, reset, reset+rowPrefix)
}

func fgSeq(c lipgloss.Color) string {
	return colorSeq(c, false)
}

func bgSeq(c lipgloss.Color) string {
	return colorSeq(c, true)
}

func colorSeq(c lipgloss.Color, bg bool) string {
	value := string(c)
	if value == "" {
		if bg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	profile := lipgloss.ColorProfile()
	tc := profile.Color(value)
	if tc == nil {
		return ""
	}
	return termenv.CSI + tc.Sequence(bg) + "m"
}
