package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/andareed/siftly-series/ingest"
)

type renderedRow struct {
	cols     []string
	position int // row position in the derived frame
}

// frameRow reads row pos of f: the index label followed by the first ncols
// cells.
func frameRow(f *ingest.Frame, pos, ncols int) renderedRow {
	cols := make([]string, 0, ncols+1)
	cols = append(cols, f.Index.Label(pos))
	for c := 0; c < ncols; c++ {
		cols = append(cols, f.Cell(pos, c))
	}
	return renderedRow{cols: cols, position: pos}
}

func (r *renderedRow) Join(sep string) string {
	return strings.Join(r.cols, sep)
}

// String is the tab separated form used for the clipboard.
func (r *renderedRow) String() string {
	return r.Join("\t")
}

// Render draws the row on a single line; cells wider than their column are
// cut with an ellipsis.
func (r *renderedRow) Render(style lipgloss.Style, colsMeta []ColumnMeta) string {
	var rendered []string
	for i, text := range r.cols {
		if i >= len(colsMeta) {
			break
		}
		meta := colsMeta[i]
		if meta.Width <= 0 {
			continue
		}
		inner := max(meta.Width-style.GetHorizontalPadding(), 1)
		text = truncate.StringWithTail(text, uint(inner), "…")
		rendered = append(rendered, style.Width(meta.Width).MaxHeight(1).Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
