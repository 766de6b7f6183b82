package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andareed/siftly-series/ingest"
	"github.com/andareed/siftly-series/logging"
	"github.com/andareed/siftly-series/plot"
	"github.com/andareed/siftly-series/transform"
	"github.com/andareed/siftly-series/viewport"
)

// seriesTab is one ingested file on screen. It owns its viewport.
type seriesTab struct {
	name  string
	path  string
	hints ingest.Hints

	frame     *ingest.Frame
	columns   []string
	transform transform.Kind
	derived   *ingest.Frame

	ctrl  *viewport.Controller
	chart plot.Chart
}

func newSeriesTab(path string, hints ingest.Hints, f *ingest.Frame, zoom float64) *seriesTab {
	t := &seriesTab{
		name:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		path:  path,
		hints: hints,
		frame: f,
		ctrl:  viewport.New(viewport.WithZoomFactor(zoom)),
	}
	if lo, hi, ok := f.Extent(); ok {
		t.ctrl.Bind(lo, hi)
	} else {
		t.ctrl.Bind(0, float64(max(f.Len()-1, 1)))
	}
	return t
}

// selectColumns keeps the numeric columns among want, falling back to the
// frame's defaults when none survive.
func (t *seriesTab) selectColumns(want []string) {
	numeric := make(map[string]bool)
	for _, n := range t.frame.NumericColumnNames() {
		numeric[n] = true
	}
	var cols []string
	for _, w := range want {
		n := ingest.NormalizeName(w)
		if numeric[n] {
			cols = append(cols, n)
		}
	}
	if len(cols) == 0 {
		cols = plot.DefaultColumns(t.frame)
	}
	t.columns = cols
}

// apply recomputes the derived frame. A failed transform falls back to Raw
// and is returned so the caller can report it.
func (t *seriesTab) apply(window int) error {
	derived, err := transform.Apply(t.frame, t.columns, t.transform, window)
	if err != nil {
		logging.Warnf("tab %s: %v transform failed: %v", t.name, t.transform, err)
		t.transform = transform.Raw
		t.derived = t.frame.WithColumns(t.columns...)
		return fmt.Errorf("%v: %w", transform.Raw, err)
	}
	t.derived = derived
	return nil
}

func (t *seriesTab) title() string {
	title := plot.InferKind(t.frame.ColumnNames()).Title()
	if t.transform != transform.Raw {
		title += " · " + t.transform.String()
	}
	return title
}

func (t *seriesTab) render(width, height int) {
	if t.derived == nil {
		t.derived = t.frame.WithColumns(t.columns...)
	}
	t.chart = plot.Render(t.derived, t.ctrl.Current(), plot.Options{
		Width:  width,
		Height: height,
		Title:  t.title(),
	})
}

// visibleRows are the derived frame's row positions inside the viewport.
func (t *seriesTab) visibleRows() []int {
	vp := t.ctrl.Current()
	return t.derived.RowsBetween(vp.Min, vp.Max)
}

func (t *seriesTab) windowLabel() string {
	vp := t.ctrl.Current()
	span := vp.Width()
	kind := t.frame.Index.Kind
	return fmt.Sprintf("Window: %s – %s", plot.FormatX(kind, vp.Min, span), plot.FormatX(kind, vp.Max, span))
}
