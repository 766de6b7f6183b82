package ingest

import (
	"fmt"
	"strings"
)

// maxSampleRows caps how many degraded row numbers a report keeps.
const maxSampleRows = 5

// Report records how ingestion resolved ambiguous input and which data
// degraded on the way. It never affects the frame's content.
type Report struct {
	Delimiter        rune
	DelimiterSniffed bool
	Rows             int
	Candidates       []string
	Confidence       Confidence
	Merged           bool // several candidate columns were joined into one timestamp
	NullTimestamps   int
	NullRowSample    []int // 1-based data row numbers, first few only
	Coercions        []Coercion
	PaddedRows       int // rows shorter than the header
	TruncatedRows    int // rows longer than the header
}

// Coercion is the per-column outcome of the type coercion pass.
type Coercion struct {
	Column   string
	Numeric  bool
	Missing  int    // NA-like values turned into NaN
	Rejected string // first value that blocked numeric coercion
	RowNum   int    // 1-based data row of Rejected
}

// Degraded reports whether anything was absorbed instead of parsed.
func (r Report) Degraded() bool {
	return r.NullTimestamps > 0 || r.PaddedRows > 0 || r.TruncatedRows > 0
}

// Lines renders the report for the info drawer.
func (r Report) Lines() []string {
	delim := fmt.Sprintf("%q", r.Delimiter)
	if r.DelimiterSniffed {
		delim += " (sniffed)"
	} else {
		delim += " (default)"
	}
	lines := []string{
		"Delimiter: " + delim,
		fmt.Sprintf("Rows: %d", r.Rows),
	}
	switch {
	case len(r.Candidates) == 0:
		lines = append(lines, "Index: row number (no datetime column)")
	case r.Merged:
		lines = append(lines, fmt.Sprintf("Index: merged %s [%s]", strings.Join(r.Candidates, " + "), r.Confidence))
	default:
		lines = append(lines, fmt.Sprintf("Index: %s [%s]", r.Candidates[0], r.Confidence))
	}
	if r.NullTimestamps > 0 {
		lines = append(lines, fmt.Sprintf("Unparsed timestamps: %d (rows %s)", r.NullTimestamps, joinInts(r.NullRowSample)))
	}
	for _, c := range r.Coercions {
		switch {
		case c.Numeric && c.Missing > 0:
			lines = append(lines, fmt.Sprintf("  %s: numeric, %d missing", c.Column, c.Missing))
		case c.Numeric:
			lines = append(lines, fmt.Sprintf("  %s: numeric", c.Column))
		case c.Rejected != "":
			lines = append(lines, fmt.Sprintf("  %s: text (row %d: %q)", c.Column, c.RowNum, c.Rejected))
		default:
			lines = append(lines, fmt.Sprintf("  %s: text", c.Column))
		}
	}
	if r.PaddedRows > 0 || r.TruncatedRows > 0 {
		lines = append(lines, fmt.Sprintf("Ragged rows: %d short, %d long", r.PaddedRows, r.TruncatedRows))
	}
	return lines
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
