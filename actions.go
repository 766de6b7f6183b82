package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-series/clipboard"
	"github.com/andareed/siftly-series/dialogs"
	"github.com/andareed/siftly-series/plot"
	"github.com/andareed/siftly-series/transform"
)

func (m *model) handlePrompt(msg dialogs.PromptConfirmedMsg) tea.Cmd {
	if msg.Purpose == dialogs.PurposeOpen {
		return tea.Batch(m.startNotice("Opening "+msg.Path+"…", "info", noticeDuration), m.loadCmd(msg.Path))
	}

	t := m.tab()
	if t == nil {
		return nil
	}
	var err error
	var done string
	switch msg.Purpose {
	case dialogs.PurposeSave:
		err = SaveSession(m, msg.Path)
		done = "Saved session to "
	case dialogs.PurposeExport:
		err = ExportVisible(t, msg.Path)
		done = "Exported visible rows to "
	case dialogs.PurposePNG:
		err = writeChartPNG(t, msg.Path, 0, 0)
		done = "Wrote chart to "
	}
	if err != nil {
		return m.errorNotice(err)
	}
	m.lastDir = filepath.Dir(msg.Path)
	return m.startNotice(done+msg.Path, "success", noticeDuration)
}

func (m *model) handlePicked(msg dialogs.PickedMsg) tea.Cmd {
	t := m.tab()
	if t == nil || len(msg.Items) == 0 {
		return nil
	}
	var err error
	switch msg.Kind {
	case dialogs.PickColumns:
		t.selectColumns(msg.Items)
		err = t.apply(m.cfg.Transform.RollingWindow)
	case dialogs.PickTransform:
		k, ok := transform.ParseKind(msg.Items[0])
		if !ok {
			return nil
		}
		t.transform = k
		err = t.apply(m.cfg.Transform.RollingWindow)
	}
	m.ui.table.cursor = 0
	m.refreshView("picked")
	if err != nil {
		return m.errorNotice(err)
	}
	return nil
}

// writeChartPNG renders the tab's current view, with the active transform,
// to path.
func writeChartPNG(t *seriesTab, path string, width, height int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close png: %w", cerr)
		}
	}()
	return plot.WritePNG(f, t.derived, t.ctrl.Current(), plot.PNGOptions{
		Width:  width,
		Height: height,
		Title:  t.title(),
	})
}

// summaryText is the clipboard form of the current view: the window and the
// statistics of the visible rows, tab separated.
func summaryText(t *seriesTab) (string, error) {
	visible := t.derived.Rows(t.visibleRows())
	stats, err := transform.Describe(visible, visible.NumericColumnNames())
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%s\n", t.name, t.windowLabel())
	b.WriteString("column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", s.Column, s.Count,
			num(s.Mean), num(s.Std), num(s.Min), num(s.Q25), num(s.Median), num(s.Q75), num(s.Max))
	}
	return b.String(), nil
}

func (m *model) copySummary() tea.Cmd {
	t := m.tab()
	if t == nil {
		return nil
	}
	text, err := summaryText(t)
	if err != nil {
		return m.errorNotice(err)
	}
	return m.copyText(text, "view summary")
}

func (m *model) copyText(text, what string) tea.Cmd {
	method, err := clipboard.Copy(text)
	if errors.Is(err, clipboard.ErrUnavailable) {
		return m.startNotice("Clipboard unavailable", "warn", noticeErrorDuration)
	}
	if err != nil {
		return m.errorNotice(err)
	}
	return m.startNotice(fmt.Sprintf("Copied %s (%s)", what, method), "success", noticeDuration)
}
