package plot

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/andareed/siftly-series/ingest"
	"github.com/andareed/siftly-series/viewport"
)

var pngPalette = []string{"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd", "8c564b"}

// PNGOptions size and label an exported chart.
type PNGOptions struct {
	Columns []string
	Width   int
	Height  int
	Title   string
}

// WritePNG renders the rows of f inside vp as a line chart. Series with
// fewer than two points in view are left out; when none remain ErrNoData is
// returned.
func WritePNG(w io.Writer, f *ingest.Frame, vp viewport.Viewport, opts PNGOptions) error {
	if !vp.Valid() {
		return fmt.Errorf("invalid viewport %s", vp)
	}
	ss, _ := collect(f, vp, opts.Columns)
	lo, hi, ok := yRange(ss)
	if !ok {
		return ErrNoData
	}

	var out []chart.Series
	for i, s := range ss {
		if len(s.xs) < 2 {
			continue
		}
		out = append(out, chart.ContinuousSeries{
			Name:    s.name,
			XValues: s.xs,
			YValues: s.ys,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(pngPalette[i%len(pngPalette)]),
				StrokeWidth: 1.5,
			},
		})
	}
	if len(out) == 0 {
		return ErrNoData
	}

	title := opts.Title
	if title == "" {
		title = InferKind(f.ColumnNames()).Title()
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}

	kind := f.Index.Kind
	span := vp.Width()
	xName := f.Index.Name
	if xName == "" && kind == ingest.IndexOrdinal {
		xName = "row"
	}

	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  xName,
			Range: &chart.ContinuousRange{Min: vp.Min, Max: vp.Max},
			ValueFormatter: func(v interface{}) string {
				if x, ok := v.(float64); ok {
					return FormatX(kind, x, span)
				}
				return fmt.Sprint(v)
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: out,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}
