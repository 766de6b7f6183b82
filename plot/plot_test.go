package plot

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-series/ingest"
	"github.com/andareed/siftly-series/viewport"
)

func hourly(t *testing.T, cols ...ingest.Column) *ingest.Frame {
	t.Helper()
	n := cols[0].Values.Len()
	stamps := make([]ingest.Timestamp, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range stamps {
		stamps[i] = ingest.Timestamp{Time: base.Add(time.Duration(i) * time.Hour), Valid: true}
	}
	f, err := ingest.NewFrame("x.csv", ingest.NewTimeIndex("date", stamps), cols, ingest.Report{})
	require.NoError(t, err)
	return f
}

func full(f *ingest.Frame) viewport.Viewport {
	lo, hi, _ := f.Extent()
	return viewport.Viewport{Min: lo, Max: hi}
}

func TestRender(t *testing.T) {
	f := hourly(t,
		ingest.Column{Name: "close", Values: ingest.Numeric{1, 3, 2, 5}},
		ingest.Column{Name: "volume", Values: ingest.Numeric{10, 20, 30, 40}},
	)

	c := Render(f, full(f), Options{Columns: []string{"close"}, Width: 60, Height: 14})

	require.NoError(t, c.Err)
	assert.Equal(t, 4, c.Rows)
	assert.Equal(t, 1, c.Area.Top)
	assert.Equal(t, 10, c.Area.Height)
	assert.Equal(t, 60, c.Area.Left+c.Area.Width)
	assert.Contains(t, c.View, "Generic Data")
	assert.Contains(t, c.View, "━ close")
	assert.NotContains(t, c.View, "volume")
	assert.Contains(t, c.View, "01-01 00:00")
	assert.Equal(t, 14, len(bytes.Split([]byte(c.View), []byte("\n"))))
}

func TestRender_NoDataInView(t *testing.T) {
	f := hourly(t, ingest.Column{Name: "v", Values: ingest.Numeric{1, 2}})
	lo, _, _ := f.Extent()

	c := Render(f, viewport.Viewport{Min: lo - 100, Max: lo - 50}, Options{Width: 40, Height: 10})

	assert.ErrorIs(t, c.Err, ErrNoData)
	assert.Equal(t, 0, c.Rows)
	assert.Contains(t, c.View, "no data in view")
}

func TestRender_TinySizeClamped(t *testing.T) {
	f := hourly(t, ingest.Column{Name: "v", Values: ingest.Numeric{1, 1}})

	c := Render(f, full(f), Options{Width: 1, Height: 1})

	assert.Equal(t, minPlotWidth, c.Area.Width)
	assert.Equal(t, minPlotHeight, c.Area.Height)
	require.NoError(t, c.Err)
}

func TestAreaPointer(t *testing.T) {
	a := Area{Left: 5, Top: 1, Width: 10, Height: 4}
	vp := viewport.Viewport{Min: 0, Max: 100}

	p := a.Pointer(vp, 5, 2)
	assert.True(t, p.InData)
	assert.Equal(t, 0.5, p.PixelX)
	assert.InDelta(t, 5, p.DataX, 1e-9)

	p = a.Pointer(vp, 14, 4)
	assert.InDelta(t, 95, p.DataX, 1e-9)

	assert.False(t, a.Pointer(vp, 4, 2).InData)
	assert.False(t, a.Pointer(vp, 15, 2).InData)
	assert.False(t, a.Pointer(vp, 6, 5).InData)
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		cols []string
		want Kind
	}{
		{[]string{"open", "high", "low", "close", "volume"}, Financial},
		{[]string{"Open", "High", "Low"}, Generic},
		{[]string{"room_temp"}, Sensor},
		{[]string{"pressure_kpa", "anomaly"}, Sensor},
		{[]string{"value", "anomaly"}, Anomaly},
		{[]string{"y", "yhat", "yhat_lower"}, Forecast},
		{[]string{"a", "b"}, Generic},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferKind(tt.cols), "%v", tt.cols)
	}
	assert.Equal(t, "Price", Financial.Title())
	assert.Equal(t, "Generic Data", Generic.Title())
}

func TestDefaultColumns(t *testing.T) {
	f := hourly(t,
		ingest.Column{Name: "open", Values: ingest.Numeric{1}},
		ingest.Column{Name: "high", Values: ingest.Numeric{1}},
		ingest.Column{Name: "low", Values: ingest.Numeric{1}},
		ingest.Column{Name: "close", Values: ingest.Numeric{1}},
	)
	assert.Equal(t, []string{"close"}, DefaultColumns(f))

	g := hourly(t,
		ingest.Column{Name: "host", Values: ingest.Text{"a"}},
		ingest.Column{Name: "load", Values: ingest.Numeric{1}},
	)
	assert.Equal(t, []string{"load"}, DefaultColumns(g))

	h := hourly(t, ingest.Column{Name: "host", Values: ingest.Text{"a"}})
	assert.Nil(t, DefaultColumns(h))
}

func TestFormatX(t *testing.T) {
	x := ingest.TimeToX(time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC))

	assert.Equal(t, "2024-03-04", FormatX(ingest.IndexTime, x, 10*86400))
	assert.Equal(t, "03-04 05:06", FormatX(ingest.IndexTime, x, 3600))
	assert.Equal(t, "05:06:07", FormatX(ingest.IndexTime, x, 30))
	assert.Equal(t, "05:06:07.000", FormatX(ingest.IndexTime, x, 0.5))
	assert.Equal(t, "42", FormatX(ingest.IndexOrdinal, 42, 100))
}

func TestCanvasLine(t *testing.T) {
	c := newCanvas(2, 1)

	c.line(0, 0, 3, 3, 0)

	r, owner := c.cell(0, 0)
	assert.Equal(t, rune(0x2800+0x01+0x10), r)
	assert.Equal(t, 0, owner)
	r, _ = c.cell(1, 0)
	assert.Equal(t, rune(0x2800+0x04+0x80), r)
}

func TestWritePNG(t *testing.T) {
	f := hourly(t, ingest.Column{Name: "v", Values: ingest.Numeric{1, 4, 2, 8}})
	var buf bytes.Buffer

	require.NoError(t, WritePNG(&buf, f, full(f), PNGOptions{Width: 320, Height: 200}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	lo, _, _ := f.Extent()
	err := WritePNG(&bytes.Buffer{}, f, viewport.Viewport{Min: lo, Max: lo + 1}, PNGOptions{})
	assert.ErrorIs(t, err, ErrNoData)
}
