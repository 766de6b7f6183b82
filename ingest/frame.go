package ingest

import (
	"fmt"
	"math"
	"time"
)

// IndexKind says how the row keys of a Frame are encoded.
type IndexKind int

const (
	IndexOrdinal IndexKind = iota // row positions 0..n-1
	IndexTime                     // parsed timestamps
)

func (k IndexKind) String() string {
	if k == IndexTime {
		return "time"
	}
	return "ordinal"
}

// Timestamp is a parsed index value. Valid is false for values that could not
// be parsed (the NaT sentinel).
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// Index holds the row keys of a Frame.
type Index struct {
	Name  string
	Kind  IndexKind
	stamp []Timestamp
	n     int
}

// NewTimeIndex builds a time index. The slice is copied.
func NewTimeIndex(name string, stamps []Timestamp) Index {
	cp := make([]Timestamp, len(stamps))
	copy(cp, stamps)
	return Index{Name: name, Kind: IndexTime, stamp: cp, n: len(cp)}
}

// NewOrdinalIndex builds an index of n row positions.
func NewOrdinalIndex(n int) Index {
	return Index{Kind: IndexOrdinal, n: n}
}

func (ix Index) Len() int { return ix.n }

// At returns the timestamp of row i. Ordinal indexes have no timestamps.
func (ix Index) At(i int) Timestamp {
	if ix.Kind != IndexTime || i < 0 || i >= len(ix.stamp) {
		return Timestamp{}
	}
	return ix.stamp[i]
}

// Timestamps returns a copy of the parsed timestamps (nil for ordinal indexes).
func (ix Index) Timestamps() []Timestamp {
	if ix.Kind != IndexTime {
		return nil
	}
	cp := make([]Timestamp, len(ix.stamp))
	copy(cp, ix.stamp)
	return cp
}

// X returns the data-space x coordinate of row i: fractional Unix seconds for
// time indexes, the row position for ordinal ones. Rows with an invalid
// timestamp have no coordinate.
func (ix Index) X(i int) (float64, bool) {
	if i < 0 || i >= ix.n {
		return 0, false
	}
	if ix.Kind == IndexOrdinal {
		return float64(i), true
	}
	ts := ix.stamp[i]
	if !ts.Valid {
		return 0, false
	}
	return TimeToX(ts.Time), true
}

// Label renders row i's key for tables and exports.
func (ix Index) Label(i int) string {
	if ix.Kind == IndexOrdinal {
		return fmt.Sprintf("%d", i)
	}
	ts := ix.At(i)
	if !ts.Valid {
		return "NaT"
	}
	return ts.Time.Format(time.RFC3339Nano)
}

// NullCount is the number of rows whose timestamp did not parse.
func (ix Index) NullCount() int {
	if ix.Kind != IndexTime {
		return 0
	}
	n := 0
	for _, ts := range ix.stamp {
		if !ts.Valid {
			n++
		}
	}
	return n
}

func (ix Index) subset(rows []int) Index {
	if ix.Kind == IndexOrdinal {
		// Positions are renumbered; a subset of an ordinal index stays ordinal.
		return Index{Name: ix.Name, Kind: IndexOrdinal, n: len(rows)}
	}
	out := make([]Timestamp, len(rows))
	for i, r := range rows {
		out[i] = ix.stamp[r]
	}
	return Index{Name: ix.Name, Kind: IndexTime, stamp: out, n: len(out)}
}

// TimeToX converts a time to the x coordinate used by time indexes.
func TimeToX(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// XToTime is the inverse of TimeToX.
func XToTime(x float64) time.Time {
	sec, frac := math.Modf(x)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

// ColumnValue is the typed content of a column: Numeric or Text.
type ColumnValue interface {
	Len() int
	isColumnValue()
}

// Numeric is a wholly numeric column. NaN marks a missing value.
type Numeric []float64

// Text is a column left as its original string values.
type Text []string

func (n Numeric) Len() int     { return len(n) }
func (Numeric) isColumnValue() {}
func (t Text) Len() int        { return len(t) }
func (Text) isColumnValue()    {}

// Column is a named column of a Frame.
type Column struct {
	Name   string
	Values ColumnValue
}

// IsNumeric reports whether the column was coerced to numbers.
func (c Column) IsNumeric() bool {
	_, ok := c.Values.(Numeric)
	return ok
}

// Frame is the uniform time-indexed series produced by ingestion. Frames are
// not modified after construction; derived frames are new values.
type Frame struct {
	Source  string
	Index   Index
	columns []Column
	Report  Report
}

// NewFrame checks that every column is aligned with the index.
func NewFrame(source string, index Index, cols []Column, report Report) (*Frame, error) {
	out := make([]Column, len(cols))
	for i, c := range cols {
		if c.Values == nil {
			return nil, fmt.Errorf("column %q has no values", c.Name)
		}
		if c.Values.Len() != index.Len() {
			return nil, fmt.Errorf("column %q has %d values, index has %d", c.Name, c.Values.Len(), index.Len())
		}
		out[i] = Column{Name: c.Name, Values: copyValues(c.Values)}
	}
	return &Frame{Source: source, Index: index, columns: out, Report: report}, nil
}

func copyValues(v ColumnValue) ColumnValue {
	switch vv := v.(type) {
	case Numeric:
		return append(Numeric(nil), vv...)
	case Text:
		return append(Text(nil), vv...)
	}
	return v
}

// Len is the number of rows.
func (f *Frame) Len() int { return f.Index.Len() }

// Columns returns a copy of the column list.
func (f *Frame) Columns() []Column {
	out := make([]Column, len(f.columns))
	for i, c := range f.columns {
		out[i] = Column{Name: c.Name, Values: copyValues(c.Values)}
	}
	return out
}

// ColumnNames lists the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// NumericColumnNames lists the columns that were coerced to numbers.
func (f *Frame) NumericColumnNames() []string {
	var names []string
	for _, c := range f.columns {
		if c.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

// Column looks a column up by (normalized) name.
func (f *Frame) Column(name string) (Column, bool) {
	key := NormalizeName(name)
	for _, c := range f.columns {
		if c.Name == key {
			return Column{Name: c.Name, Values: copyValues(c.Values)}, true
		}
	}
	return Column{}, false
}

// Numeric returns the values of a numeric column without copying. Callers
// must not modify the returned slice.
func (f *Frame) Numeric(name string) (Numeric, bool) {
	key := NormalizeName(name)
	for _, c := range f.columns {
		if c.Name == key {
			n, ok := c.Values.(Numeric)
			return n, ok
		}
	}
	return nil, false
}

// Cell renders one value for display.
func (f *Frame) Cell(row, col int) string {
	if col < 0 || col >= len(f.columns) || row < 0 || row >= f.Len() {
		return ""
	}
	switch v := f.columns[col].Values.(type) {
	case Numeric:
		return FormatFloat(v[row])
	case Text:
		return v[row]
	}
	return ""
}

// WithColumns derives a frame holding only the named columns, in the given
// order. Unknown names are skipped.
func (f *Frame) WithColumns(names ...string) *Frame {
	var cols []Column
	for _, n := range names {
		if c, ok := f.Column(n); ok {
			cols = append(cols, c)
		}
	}
	return &Frame{Source: f.Source, Index: f.Index, columns: cols, Report: f.Report}
}

// Derive builds a new frame sharing this frame's source and report.
func (f *Frame) Derive(index Index, cols []Column) (*Frame, error) {
	return NewFrame(f.Source, index, cols, f.Report)
}

// Rows derives a frame holding only the given row positions.
func (f *Frame) Rows(rows []int) *Frame {
	cols := make([]Column, len(f.columns))
	for i, c := range f.columns {
		switch v := c.Values.(type) {
		case Numeric:
			out := make(Numeric, len(rows))
			for j, r := range rows {
				out[j] = v[r]
			}
			cols[i] = Column{Name: c.Name, Values: out}
		case Text:
			out := make(Text, len(rows))
			for j, r := range rows {
				out[j] = v[r]
			}
			cols[i] = Column{Name: c.Name, Values: out}
		}
	}
	return &Frame{Source: f.Source, Index: f.Index.subset(rows), columns: cols, Report: f.Report}
}

// Extent is the smallest and largest x coordinate over rows that have one.
func (f *Frame) Extent() (lo, hi float64, ok bool) {
	for i := 0; i < f.Len(); i++ {
		x, has := f.Index.X(i)
		if !has {
			continue
		}
		if !ok {
			lo, hi, ok = x, x, true
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi, ok
}

// RowsBetween returns the positions of rows whose x lies in [lo, hi], in row
// order.
func (f *Frame) RowsBetween(lo, hi float64) []int {
	var rows []int
	for i := 0; i < f.Len(); i++ {
		x, ok := f.Index.X(i)
		if ok && x >= lo && x <= hi {
			rows = append(rows, i)
		}
	}
	return rows
}
