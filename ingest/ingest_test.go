package ingest

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngest_SemicolonOHLC(t *testing.T) {
	path := writeFile(t, "a.csv", "Date;Open;High;Low;Close\n2024-01-01 09:30;1.0;2.0;0.5;1.5\n")

	f, err := Ingest(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, f.Len())
	assert.Equal(t, IndexTime, f.Index.Kind)
	assert.Equal(t, "date", f.Index.Name)
	assert.WithinDuration(t, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), f.Index.At(0).Time, 0)
	assert.Equal(t, []string{"open", "high", "low", "close"}, f.ColumnNames())
	assert.Equal(t, []string{"open", "high", "low", "close"}, f.NumericColumnNames())

	closeCol, ok := f.Numeric("Close")
	require.True(t, ok)
	assert.Equal(t, Numeric{1.5}, closeCol)

	assert.Equal(t, ';', f.Report.Delimiter)
	assert.True(t, f.Report.DelimiterSniffed)
	assert.Equal(t, path, f.Source)
}

func TestIngest_HintOverridesKeywords(t *testing.T) {
	path := writeFile(t, "h.csv", "date,time,ts_custom,v\n2024-01-01,10:30:00,2024-02-02 08:00:00,1\n")

	f, err := Ingest(context.Background(), path, Options{Hints: Hints{DatetimeCols: []string{"ts_custom"}}})
	require.NoError(t, err)

	assert.Equal(t, "ts_custom", f.Index.Name)
	assert.WithinDuration(t, time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC), f.Index.At(0).Time, 0)
	assert.Equal(t, []string{"date", "time", "v"}, f.ColumnNames())
	assert.Equal(t, ConfidenceExplicitHint, f.Report.Confidence)
}

func TestIngest_MergesDateAndTime(t *testing.T) {
	path := writeFile(t, "m.csv", "date,time,v\n2024-01-01,10:30:00,5\n2024-01-01,10:31:00,6\n")

	f, err := Ingest(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.True(t, f.Report.Merged)
	assert.Equal(t, "date time", f.Index.Name)
	assert.WithinDuration(t, time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), f.Index.At(0).Time, 0)
	assert.WithinDuration(t, time.Date(2024, 1, 1, 10, 31, 0, 0, time.UTC), f.Index.At(1).Time, 0)
	assert.Equal(t, []string{"v"}, f.ColumnNames())
}

func TestIngest_NoDatetimeColumn(t *testing.T) {
	path := writeFile(t, "o.csv", "a,b\n1,2\n3,4\n")

	f, err := Ingest(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, IndexOrdinal, f.Index.Kind)
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []string{"a", "b"}, f.NumericColumnNames())
}

func TestIngest_DegradesInsteadOfFailing(t *testing.T) {
	content := strings.Join([]string{
		"timestamp,temp,label",
		"2024-05-01T00:00:00Z,21.5,ok",
		"garbage,NA,ok",
		"2024-05-01T00:02:00Z,22,ok,extra",
		"2024-05-01T00:03:00Z",
		"",
	}, "\n")
	path := writeFile(t, "s.csv", content)

	f, err := Ingest(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, 4, f.Len())
	assert.Equal(t, 1, f.Report.NullTimestamps)
	assert.Equal(t, []int{2}, f.Report.NullRowSample)
	assert.Equal(t, 1, f.Report.PaddedRows)
	assert.Equal(t, 1, f.Report.TruncatedRows)
	assert.True(t, f.Report.Degraded())

	temp, ok := f.Column("temp")
	require.True(t, ok)
	assert.True(t, temp.IsNumeric())
	label, _ := f.Column("label")
	assert.Equal(t, Text{"ok", "ok", "ok", ""}, label.Values)
}

func TestIngest_BOMAndDuplicateHeaders(t *testing.T) {
	path := writeFile(t, "b.csv", "\ufeffDate,v,V,\n2024-01-01,1,2,3\n")

	f, err := Ingest(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, "date", f.Index.Name)
	assert.Equal(t, []string{"v", "v.1", "unnamed: 3"}, f.ColumnNames())
}

func TestIngest_SuffixedHeaderDoesNotCollide(t *testing.T) {
	f, err := Read(context.Background(), strings.NewReader("a,a,a.1\n1,2,3\n"), ',', Hints{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a.1", "a.1.1"}, f.ColumnNames())
	assert.Equal(t, "1", f.Cell(0, 0))
	assert.Equal(t, "2", f.Cell(0, 1))
	assert.Equal(t, "3", f.Cell(0, 2))

	assert.Equal(t, []string{"x", "x.1", "x.2", "x.1.1"}, normalizeHeader([]string{"x", "X", "x", "x.1"}))
}

func TestIngest_TimeOnlyColumn(t *testing.T) {
	path := writeFile(t, "clock.csv", "time,v\n09:30:00,1\n09:31:00,2\n10:15:00,3\n")

	f, err := Ingest(context.Background(), path, Options{})
	require.NoError(t, err)

	require.Equal(t, IndexTime, f.Index.Kind)
	assert.Equal(t, "time", f.Index.Name)
	assert.Zero(t, f.Report.NullTimestamps)
	assert.Equal(t, "1970-01-01T09:30:00Z", f.Index.Label(0))
	assert.Equal(t, "1970-01-01T09:31:00Z", f.Index.Label(1))
	assert.Equal(t, "1970-01-01T10:15:00Z", f.Index.Label(2))
	assert.Equal(t, []string{"v"}, f.NumericColumnNames())
}

func TestIngest_DateTimeOHLCScenario(t *testing.T) {
	path := writeFile(t, "a.csv", "date,time,open,high,low,close\n2024-01-01,09:30:00,100,101,99,100.5\n")

	f, err := Ingest(context.Background(), path, Options{})
	require.NoError(t, err)

	require.Equal(t, 1, f.Len())
	assert.Equal(t, IndexTime, f.Index.Kind)
	assert.Equal(t, "date time", f.Index.Name)
	assert.True(t, f.Report.Merged)
	assert.WithinDuration(t, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), f.Index.At(0).Time, 0)
	assert.Equal(t, []string{"open", "high", "low", "close"}, f.ColumnNames())
	for name, want := range map[string]float64{"open": 100, "high": 101, "low": 99, "close": 100.5} {
		col, ok := f.Numeric(name)
		require.True(t, ok, name)
		assert.Equal(t, Numeric{want}, col, name)
	}
}

func TestIngest_NotFound(t *testing.T) {
	_, err := Ingest(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var ie *IngestError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, KindNotFound, ie.Kind)

	_, err = Ingest(context.Background(), t.TempDir(), Options{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestIngest_Empty(t *testing.T) {
	for name, content := range map[string]string{
		"empty.csv":  "",
		"header.csv": "date,v\n",
		"blank.csv":  "date,v\n,\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Ingest(context.Background(), writeFile(t, name, content), Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrEmpty))
			assert.False(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestIngest_Idempotent(t *testing.T) {
	path := writeFile(t, "i.csv", "time|load|host\n2024-01-01 00:00|0.5|a\n2024-01-01 00:01||b\n2024-01-01 00:02|0.75|\n")

	first, err := Ingest(context.Background(), path, Options{})
	require.NoError(t, err)
	second, err := Ingest(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Source, second.Source)
	assert.Equal(t, first.Index, second.Index)
	assert.Equal(t, first.Report, second.Report)
	require.Equal(t, first.ColumnNames(), second.ColumnNames())
	for i, c := range first.columns {
		other := second.columns[i]
		switch v := c.Values.(type) {
		case Numeric:
			w, ok := other.Values.(Numeric)
			require.True(t, ok, c.Name)
			require.Len(t, w, len(v))
			for j := range v {
				assert.Equal(t, math.Float64bits(v[j]), math.Float64bits(w[j]), "%s row %d", c.Name, j)
			}
		default:
			assert.Equal(t, c.Values, other.Values, c.Name)
		}
	}

	load, _ := first.Numeric("load")
	assert.True(t, math.IsNaN(load[1]))
}

func TestRead_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Read(ctx, strings.NewReader("a,b\n1,2\n"), ',', Hints{}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFrame_RowsAndExtent(t *testing.T) {
	path := writeFile(t, "r.csv", "date,v\n2024-01-01,1\n2024-01-03,3\nbad,9\n2024-01-02,2\n")
	f, err := Ingest(context.Background(), path, Options{})
	require.NoError(t, err)

	lo, hi, ok := f.Extent()
	require.True(t, ok)
	assert.Equal(t, TimeToX(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), lo)
	assert.Equal(t, TimeToX(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)), hi)

	rows := f.RowsBetween(lo, TimeToX(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []int{0, 3}, rows)

	sub := f.Rows(rows)
	v, _ := sub.Numeric("v")
	assert.Equal(t, Numeric{1, 2}, v)
	assert.Equal(t, "1", sub.Cell(0, 0))
}
