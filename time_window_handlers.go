package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-series/logging"
)

func (m *model) openTimeWindowDrawer() {
	t := m.tab()
	if t == nil {
		return
	}
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	vp := t.ctrl.Current()
	tw.draftMin, tw.draftMax = vp.Min, vp.Max
	m.updateTimeWindowInputsFromDraft()
	m.setTimeWindowFocus(timeWindowFocusStart)
	m.setMode(modeTimeWindow)
}

func (m *model) closeTimeWindowDrawer() {
	m.ui.timeWindow.errorMsg = ""
	m.setTimeWindowFocus(timeWindowFocusScrubber)
	m.setMode(modeView)
}

func (m *model) handleTimeWindowKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tw := &m.ui.timeWindow

	switch {
	case msg.Type == tea.KeyEsc:
		m.closeTimeWindowDrawer()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.applyTimeWindowFromInputs()
		return m, nil
	case msg.Type == tea.KeyCtrlR:
		m.resetTimeWindowDraft()
		return m, nil
	case msg.Type == tea.KeyTab:
		m.setTimeWindowFocus((tw.focus + 1) % 3)
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.setTimeWindowFocus((tw.focus + 2) % 3)
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.Type == tea.KeyLeft:
		m.shiftTimeWindow(-1)
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.Type == tea.KeyRight:
		m.shiftTimeWindow(1)
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.Type == tea.KeyShiftLeft:
		m.expandTimeWindow(-1)
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.Type == tea.KeyShiftRight:
		m.expandTimeWindow(1)
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.String() == "-":
		m.adjustTimeWindowStep(false)
		return m, nil
	case tw.focus == timeWindowFocusScrubber && (msg.String() == "+" || msg.String() == "="):
		m.adjustTimeWindowStep(true)
		return m, nil
	}

	var cmd tea.Cmd
	switch tw.focus {
	case timeWindowFocusStart:
		tw.startInput, cmd = tw.startInput.Update(msg)
	case timeWindowFocusEnd:
		tw.endInput, cmd = tw.endInput.Update(msg)
	}
	return m, cmd
}

func (m *model) setTimeWindowFocus(focus int) {
	tw := &m.ui.timeWindow
	tw.focus = focus
	switch focus {
	case timeWindowFocusStart:
		tw.startInput.Focus()
		tw.endInput.Blur()
	case timeWindowFocusEnd:
		tw.startInput.Blur()
		tw.endInput.Focus()
	default:
		tw.startInput.Blur()
		tw.endInput.Blur()
	}
}

func (m *model) updateTimeWindowInputsFromDraft() {
	t := m.tab()
	if t == nil {
		return
	}
	tw := &m.ui.timeWindow
	kind := t.frame.Index.Kind
	tw.startInput.SetValue(formatBound(kind, tw.draftMin))
	tw.endInput.SetValue(formatBound(kind, tw.draftMax))
}

// syncDraftFromInputs takes whatever parses from the inputs into the draft.
func (m *model) syncDraftFromInputs() {
	t := m.tab()
	if t == nil {
		return
	}
	tw := &m.ui.timeWindow
	kind := t.frame.Index.Kind
	if lo, err := parseBound(kind, tw.startInput.Value()); err == nil {
		tw.draftMin = lo
	}
	if hi, err := parseBound(kind, tw.endInput.Value()); err == nil {
		tw.draftMax = hi
	}
}

func (m *model) resetTimeWindowDraft() {
	t := m.tab()
	if t == nil {
		return
	}
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	full := t.ctrl.Extent()
	tw.draftMin, tw.draftMax = full.Min, full.Max
	m.updateTimeWindowInputsFromDraft()
}

func (m *model) applyTimeWindowFromInputs() {
	t := m.tab()
	if t == nil {
		return
	}
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	kind := t.frame.Index.Kind

	lo, err := parseBound(kind, tw.startInput.Value())
	if err != nil {
		tw.errorMsg = "Invalid start: " + err.Error()
		return
	}
	hi, err := parseBound(kind, tw.endInput.Value())
	if err != nil {
		tw.errorMsg = "Invalid end: " + err.Error()
		return
	}
	full := t.ctrl.Extent()
	lo = clampFloat(lo, full.Min, full.Max)
	hi = clampFloat(hi, full.Min, full.Max)
	if lo >= hi {
		tw.errorMsg = "Start must be before end"
		return
	}
	if !t.ctrl.SetRange(lo, hi) {
		tw.errorMsg = "Invalid range"
		return
	}
	logging.Debugf("time window applied: %s", t.ctrl.Current())
	tw.draftMin, tw.draftMax = lo, hi
	m.closeTimeWindowDrawer()
}

func (m *model) timeWindowStep() float64 {
	t := m.tab()
	if t == nil {
		return 0
	}
	step := m.ui.timeWindow.step
	if step <= 0 {
		step = timeWindowStepDefault
	}
	return clampFloat(step, timeWindowStepMin, timeWindowStepMax) * t.ctrl.Extent().Width()
}

func (m *model) adjustTimeWindowStep(increase bool) {
	step := m.ui.timeWindow.step
	if increase {
		step *= 2
	} else {
		step /= 2
	}
	m.ui.timeWindow.step = clampFloat(step, timeWindowStepMin, timeWindowStepMax)
}

// shiftTimeWindow moves the draft by one step in dir, keeping its width and
// staying inside the extent.
func (m *model) shiftTimeWindow(dir float64) {
	t := m.tab()
	if t == nil {
		return
	}
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	m.syncDraftFromInputs()

	full := t.ctrl.Extent()
	width := tw.draftMax - tw.draftMin
	if width <= 0 || width >= full.Width() {
		tw.draftMin, tw.draftMax = full.Min, full.Max
		m.updateTimeWindowInputsFromDraft()
		return
	}

	delta := dir * m.timeWindowStep()
	lo := tw.draftMin + delta
	hi := tw.draftMax + delta
	if lo < full.Min {
		lo, hi = full.Min, full.Min+width
	}
	if hi > full.Max {
		lo, hi = full.Max-width, full.Max
	}
	tw.draftMin, tw.draftMax = lo, hi
	m.updateTimeWindowInputsFromDraft()
}

// expandTimeWindow grows the draft by one step: to the left for a negative
// dir, to the right otherwise.
func (m *model) expandTimeWindow(dir float64) {
	t := m.tab()
	if t == nil {
		return
	}
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	m.syncDraftFromInputs()

	full := t.ctrl.Extent()
	step := m.timeWindowStep()
	if dir < 0 {
		tw.draftMin = max(tw.draftMin-step, full.Min)
	} else {
		tw.draftMax = min(tw.draftMax+step, full.Max)
	}
	m.updateTimeWindowInputsFromDraft()
}

func (m *model) timeWindowDrawerView(width int) string {
	t := m.tab()
	tw := &m.ui.timeWindow
	innerWidth := max(0, width-2)
	lineStyle := lipgloss.NewStyle().Width(innerWidth).MaxHeight(1)

	step := ""
	if t != nil {
		step = formatSpan(t.frame.Index.Kind, m.timeWindowStep())
	}
	helpLine := fmt.Sprintf("tab: next  enter: apply  ctrl+r: full range  esc: cancel  ←/→: move %s  shift+←/→: expand  -/+: step", step)
	errorLine := ""
	if tw.errorMsg != "" {
		errorLine = errorStyle.Render("Error: " + tw.errorMsg)
	}

	lines := []string{
		lineStyle.Render("Start: " + tw.startInput.View()),
		lineStyle.Render("End:   " + tw.endInput.View()),
		lineStyle.Render(m.timeWindowScrubberLine(innerWidth)),
		lineStyle.Render(helpLine),
		lineStyle.Render(errorLine),
	}
	return drawerStyle.Width(innerWidth).Render(strings.Join(lines, "\n"))
}

// timeWindowScrubberLine draws the draft window as a bracket on a bar that
// spans the full extent.
func (m *model) timeWindowScrubberLine(width int) string {
	t := m.tab()
	if t == nil {
		return "Scrubber: n/a"
	}
	tw := &m.ui.timeWindow
	full := t.ctrl.Extent()
	kind := t.frame.Index.Kind

	minLabel := formatBound(kind, full.Min)
	maxLabel := formatBound(kind, full.Max)
	padding := 2
	barWidth := width - len(minLabel) - len(maxLabel) - padding*2 - 1
	if barWidth < 10 {
		return fmt.Sprintf("Window: %s - %s", formatBound(kind, tw.draftMin), formatBound(kind, tw.draftMax))
	}

	bar := []rune(strings.Repeat("-", barWidth))
	startPos := int(float64(barWidth-1) * full.Fraction(clampFloat(tw.draftMin, full.Min, full.Max)))
	endPos := int(float64(barWidth-1) * full.Fraction(clampFloat(tw.draftMax, full.Min, full.Max)))
	startPos = clamp(startPos, 0, barWidth-1)
	endPos = clamp(endPos, 0, barWidth-1)
	if endPos < startPos {
		startPos, endPos = endPos, startPos
	}
	for i := startPos; i <= endPos; i++ {
		bar[i] = '='
	}
	bar[startPos] = '['
	bar[endPos] = ']'

	marker := " "
	if tw.focus == timeWindowFocusScrubber {
		marker = "▸"
	}
	return fmt.Sprintf("%s%s  %s  %s", marker, minLabel, string(bar), maxLabel)
}
