package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andareed/siftly-series/config"
	"github.com/andareed/siftly-series/history"
	"github.com/andareed/siftly-series/ingest"
	"github.com/andareed/siftly-series/logging"
	"github.com/andareed/siftly-series/transform"
	"github.com/andareed/siftly-series/viewport"
)

const maxParallelLoads = 4

// loadSpec describes one file to open and how to present it.
type loadSpec struct {
	path      string
	hints     ingest.Hints
	columns   []string
	transform transform.Kind
	view      *viewport.Viewport
}

// loader ingests files into tabs and records each success in the history
// store when one is configured.
type loader struct {
	opts   ingest.Options
	store  *history.Store
	zoom   float64
	window int
}

func newLoader(cfg config.Config, store *history.Store) *loader {
	return &loader{
		opts: ingest.Options{
			SampleBytes: cfg.Ingest.SampleBytes,
			Delimiters:  cfg.DelimiterRunes(),
			Keywords:    cfg.Ingest.DatetimeKeywords,
		},
		store:  store,
		zoom:   cfg.Viewport.ZoomFactor,
		window: cfg.Transform.RollingWindow,
	}
}

func (l *loader) load(ctx context.Context, spec loadSpec) (*seriesTab, error) {
	opts := l.opts
	opts.Hints = spec.hints
	f, err := ingest.Ingest(ctx, spec.path, opts)
	if err != nil {
		return nil, err
	}
	for _, line := range f.Report.Lines() {
		logging.Debugf("ingest %s: %s", spec.path, line)
	}
	l.record(ctx, spec.path, f)

	t := newSeriesTab(spec.path, spec.hints, f, l.zoom)
	t.selectColumns(spec.columns)
	t.transform = spec.transform
	if err := t.apply(l.window); err != nil {
		logging.Warnf("load %s: %v", spec.path, err)
	}
	if spec.view != nil && !t.ctrl.SetRange(spec.view.Min, spec.view.Max) {
		logging.Warnf("load %s: ignoring saved viewport %s", spec.path, spec.view)
	}
	return t, nil
}

// loadAll ingests every spec in parallel. Tabs keep the order of specs;
// failed files are reported in errs and left out.
func (l *loader) loadAll(ctx context.Context, specs []loadSpec) (tabs []*seriesTab, errs []error) {
	results := make([]*seriesTab, len(specs))
	failures := make([]error, len(specs))

	var g errgroup.Group
	g.SetLimit(maxParallelLoads)
	for i, spec := range specs {
		g.Go(func() error {
			t, err := l.load(ctx, spec)
			if err != nil {
				failures[i] = fmt.Errorf("load %s: %w", spec.path, err)
				return nil
			}
			results[i] = t
			return nil
		})
	}
	_ = g.Wait()

	for i := range specs {
		if failures[i] != nil {
			errs = append(errs, failures[i])
			continue
		}
		tabs = append(tabs, results[i])
	}
	return tabs, errs
}

func (l *loader) record(ctx context.Context, path string, f *ingest.Frame) {
	if l.store == nil {
		return
	}
	_, err := l.store.Record(ctx, history.Entry{
		Path:           path,
		Rows:           f.Len(),
		Columns:        f.ColumnNames(),
		Delimiter:      f.Report.Delimiter,
		IndexName:      f.Index.Name,
		NullTimestamps: f.Index.NullCount(),
	})
	if err != nil {
		logging.Warnf("history: %v", err)
	}
}
