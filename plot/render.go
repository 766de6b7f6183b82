// Package plot draws a Frame's visible rows as a terminal chart and as a PNG.
package plot

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/andareed/siftly-series/ingest"
	"github.com/andareed/siftly-series/viewport"
)

// ErrNoData is returned when no selected column has a value inside the
// viewport.
var ErrNoData = errors.New("no data in view")

const (
	minPlotWidth  = 8
	minPlotHeight = 2
	// title, x axis, x labels and legend
	chromeLines = 4
)

var palette = []lipgloss.Color{"39", "208", "42", "205", "226", "141"}

var (
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// Options control a render.
type Options struct {
	Columns []string // numeric columns to draw; empty means all numeric columns
	Width   int      // total cells, axes included
	Height  int      // total lines, title and legend included
	Title   string
}

// Area is the plotted region in cells, relative to the chart's top-left.
type Area struct {
	Left, Top     int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies in the plotted region.
func (a Area) Contains(x, y int) bool {
	return x >= a.Left && x < a.Left+a.Width && y >= a.Top && y < a.Top+a.Height
}

// Pointer maps a cell inside the chart to a gesture position: the pixel is
// the centre of the cell column within the plotted region.
func (a Area) Pointer(vp viewport.Viewport, x, y int) viewport.Pointer {
	if a.Width <= 0 || !a.Contains(x, y) {
		return viewport.Outside
	}
	px := float64(x-a.Left) + 0.5
	return viewport.Pointer{PixelX: px, DataX: vp.DataX(px, float64(a.Width)), InData: true}
}

// Chart is a rendered chart.
type Chart struct {
	View string
	Area Area
	Rows int // rows inside the viewport
	Err  error
}

type series struct {
	name string
	xs   []float64
	ys   []float64
}

func collect(f *ingest.Frame, vp viewport.Viewport, cols []string) ([]series, int) {
	if len(cols) == 0 {
		cols = f.NumericColumnNames()
	}
	rows := f.RowsBetween(vp.Min, vp.Max)
	var out []series
	for _, c := range cols {
		v, ok := f.Numeric(c)
		if !ok {
			continue
		}
		s := series{name: ingest.NormalizeName(c)}
		for _, r := range rows {
			if math.IsNaN(v[r]) || math.IsInf(v[r], 0) {
				continue
			}
			x, _ := f.Index.X(r)
			s.xs = append(s.xs, x)
			s.ys = append(s.ys, v[r])
		}
		out = append(out, s)
	}
	return out, len(rows)
}

func yRange(ss []series) (lo, hi float64, ok bool) {
	for _, s := range ss {
		for _, y := range s.ys {
			if !ok {
				lo, hi, ok = y, y, true
				continue
			}
			lo = math.Min(lo, y)
			hi = math.Max(hi, y)
		}
	}
	if ok && lo == hi {
		pad := math.Abs(lo) * 0.05
		if pad == 0 {
			pad = 0.5
		}
		lo, hi = lo-pad, hi+pad
	}
	return lo, hi, ok
}

// Render draws the rows of f whose x lies in vp.
func Render(f *ingest.Frame, vp viewport.Viewport, opts Options) Chart {
	ss, nrows := collect(f, vp, opts.Columns)
	lo, hi, ok := yRange(ss)

	yLabels := []string{"", "", ""}
	if ok {
		yLabels = []string{formatY(hi), formatY((lo + hi) / 2), formatY(lo)}
	}
	gutter := 0
	for _, l := range yLabels {
		gutter = max(gutter, runewidth.StringWidth(l))
	}

	area := Area{
		Left:   gutter + 1,
		Top:    1,
		Width:  max(opts.Width-gutter-1, minPlotWidth),
		Height: max(opts.Height-chromeLines, minPlotHeight),
	}
	chart := Chart{Area: area, Rows: nrows}

	var b strings.Builder
	title := opts.Title
	if title == "" {
		title = InferKind(f.ColumnNames()).Title()
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')

	cv := newCanvas(area.Width, area.Height)
	if ok {
		for i, s := range ss {
			plotSeries(cv, s, vp, lo, hi, i)
		}
	} else {
		chart.Err = ErrNoData
	}

	mid := area.Height / 2
	for y := 0; y < area.Height; y++ {
		label := ""
		switch y {
		case 0:
			label = yLabels[0]
		case mid:
			label = yLabels[1]
		case area.Height - 1:
			label = yLabels[2]
		}
		b.WriteString(labelStyle.Render(padLeft(label, gutter)))
		b.WriteString(axisStyle.Render("┤"))
		for x := 0; x < area.Width; x++ {
			r, owner := cv.cell(x, y)
			if owner < 0 {
				b.WriteRune(r)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(palette[owner%len(palette)]).Render(string(r)))
		}
		b.WriteByte('\n')
	}

	b.WriteString(strings.Repeat(" ", gutter))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", area.Width)))
	b.WriteByte('\n')

	b.WriteString(strings.Repeat(" ", area.Left))
	b.WriteString(labelStyle.Render(xAxisLabels(f.Index.Kind, vp, area.Width)))
	b.WriteByte('\n')

	if chart.Err != nil {
		b.WriteString(labelStyle.Render("no data in view"))
	} else {
		b.WriteString(legend(ss))
	}

	chart.View = b.String()
	return chart
}

func plotSeries(cv *canvas, s series, vp viewport.Viewport, lo, hi float64, idx int) {
	dw := float64(cv.dotWidth() - 1)
	dh := float64(cv.dotHeight() - 1)
	prevX, prevY, have := 0, 0, false
	for i := range s.xs {
		x := int(math.Round((s.xs[i] - vp.Min) / vp.Width() * dw))
		y := int(math.Round((hi - s.ys[i]) / (hi - lo) * dh))
		if have {
			cv.line(prevX, prevY, x, y, idx)
		} else {
			cv.set(x, y, idx)
		}
		prevX, prevY, have = x, y, true
	}
}

func legend(ss []series) string {
	parts := make([]string, 0, len(ss))
	for i, s := range ss {
		style := lipgloss.NewStyle().Foreground(palette[i%len(palette)])
		parts = append(parts, style.Render("━ "+s.name))
	}
	return strings.Join(parts, "  ")
}

// xAxisLabels places the viewport's start, middle and end under the axis.
func xAxisLabels(kind ingest.IndexKind, vp viewport.Viewport, width int) string {
	left := FormatX(kind, vp.Min, vp.Width())
	mid := FormatX(kind, vp.Min+vp.Width()/2, vp.Width())
	right := FormatX(kind, vp.Max, vp.Width())

	lw, mw, rw := runewidth.StringWidth(left), runewidth.StringWidth(mid), runewidth.StringWidth(right)
	if lw+mw+rw+2 > width {
		if lw+rw+1 > width {
			return runewidth.Truncate(left, width, "")
		}
		return left + strings.Repeat(" ", width-lw-rw) + right
	}
	midStart := width/2 - mw/2
	gap1 := max(midStart-lw, 1)
	gap2 := max(width-lw-gap1-mw-rw, 1)
	return left + strings.Repeat(" ", gap1) + mid + strings.Repeat(" ", gap2) + right
}

// FormatX renders a data-space x for display. Time coordinates use a layout
// matched to the visible span.
func FormatX(kind ingest.IndexKind, x, span float64) string {
	if kind != ingest.IndexTime {
		return fmt.Sprintf("%.6g", x)
	}
	t := ingest.XToTime(x)
	switch {
	case span >= 2*24*3600:
		return t.Format("2006-01-02")
	case span >= 120:
		return t.Format("01-02 15:04")
	case span >= 2:
		return t.Format(time.TimeOnly)
	default:
		return t.Format("15:04:05.000")
	}
}

func formatY(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

func padLeft(s string, w int) string {
	n := runewidth.StringWidth(s)
	if n >= w {
		return s
	}
	return strings.Repeat(" ", w-n) + s
}
