package main

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/andareed/siftly-series/config"
	"github.com/andareed/siftly-series/dialogs"
	"github.com/andareed/siftly-series/logging"
)

type model struct {
	cfg    config.Config
	loader *loader

	tabs   []*seriesTab
	active int

	sessionID string
	lastDir   string

	activeDialog dialogs.Dialog
	drawerPort   viewport.Model

	ui      uiState
	startup tea.Cmd

	ready          bool
	terminalWidth  int
	terminalHeight int
}

// loadedMsg carries the result of an asynchronous file open.
type loadedMsg struct {
	path string
	tab  *seriesTab
	err  error
}

func newModel(cfg config.Config, l *loader, tabs []*seriesTab) *model {
	m := &model{
		cfg:       cfg,
		loader:    l,
		tabs:      tabs,
		sessionID: uuid.NewString(),
	}
	if len(tabs) > 0 {
		m.lastDir = filepath.Dir(tabs[0].path)
	}
	m.ui.timeWindow = newTimeWindowUI()
	m.drawerPort = viewport.New(0, 0)
	return m
}

func (m *model) Init() tea.Cmd {
	logging.Info("siftly-series: initialised")
	return m.startup
}

func (m *model) tab() *seriesTab {
	if m.active < 0 || m.active >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.active]
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.ready = true
		m.refreshView("resize")
		return m, nil

	case clearNoticeMsg:
		m.clearNotice(msg.id)
		return m, nil

	case loadedMsg:
		return m, m.handleLoaded(msg)

	case dialogs.PromptConfirmedMsg:
		m.closeDialog()
		return m, m.handlePrompt(msg)

	case dialogs.PickedMsg:
		m.closeDialog()
		return m, m.handlePicked(msg)

	case dialogs.PromptCanceledMsg, dialogs.PickCanceledMsg, dialogs.HelpClosedMsg:
		m.closeDialog()
		return m, nil

	case tea.MouseMsg:
		if m.activeDialog != nil {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.activeDialog != nil && m.activeDialog.IsVisible() {
			var cmd tea.Cmd
			m.activeDialog, cmd = m.activeDialog.Update(msg)
			return m, cmd
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *model) openDialog(d dialogs.Dialog) tea.Cmd {
	m.activeDialog = d
	return d.Focus()
}

func (m *model) closeDialog() {
	if m.activeDialog != nil {
		m.activeDialog.Hide()
	}
	m.activeDialog = nil
}

// refreshView re-renders the active chart (and the open drawer) for the
// current terminal size.
func (m *model) refreshView(reason string) {
	if !m.ready {
		return
	}
	t := m.tab()
	if t == nil {
		return
	}
	w, h := m.chartSize()
	t.render(w, h)
	logging.Debugf("refreshView(%s): chart %dx%d vp=%s rows=%d", reason, w, h, t.ctrl.Current(), t.chart.Rows)

	switch m.ui.mode {
	case modeTable:
		m.syncTable()
	case modeInfo:
		m.syncInfo()
	}
}

// chartSize is the chart's size inside its border after the margins, the
// tab line, the open drawer and the footer are taken away.
func (m *model) chartSize() (int, int) {
	w := m.terminalWidth - 2*2 - 2
	h := m.terminalHeight - 2*1 - 1 - 2 - 2
	if d := m.drawerHeight(m.ui.mode); d > 0 {
		h -= d + 2
	}
	return max(w, 1), max(h, 1)
}

func (m *model) contentWidth() int {
	return max(m.terminalWidth-2*2, 1)
}

func (m *model) setMode(md mode) {
	m.ui.mode = md
	m.refreshView("mode")
}

func (m *model) switchTab(delta int) {
	if len(m.tabs) == 0 {
		return
	}
	if t := m.tab(); t != nil {
		t.ctrl.OnRelease()
	}
	m.active = (m.active + delta + len(m.tabs)) % len(m.tabs)
	m.ui.table.cursor = 0
	m.refreshView("tab")
}

func (m *model) loadCmd(path string) tea.Cmd {
	l := m.loader
	return func() tea.Msg {
		t, err := l.load(context.Background(), loadSpec{path: path})
		return loadedMsg{path: path, tab: t, err: err}
	}
}

func (m *model) handleLoaded(msg loadedMsg) tea.Cmd {
	if msg.err != nil {
		return m.errorNotice(msg.err)
	}
	m.tabs = append(m.tabs, msg.tab)
	m.active = len(m.tabs) - 1
	m.lastDir = filepath.Dir(msg.path)
	m.refreshView("loaded")
	kind := "success"
	if msg.tab.frame.Report.Degraded() {
		kind = "warn"
	}
	return m.startNotice("Opened "+msg.tab.name, kind, noticeDuration)
}
