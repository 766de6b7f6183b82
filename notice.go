package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-series/logging"
)

type clearNoticeMsg struct{ id int }

const (
	noticeDuration      = 2 * time.Second
	noticeErrorDuration = 5 * time.Second
)

func noticeText(msg, kind string) string {
	if msg == "" {
		return ""
	}
	var icon string
	switch kind {
	case "info":
		icon = "ℹ"
	case "success":
		icon = "✓"
	case "warn":
		icon = "!"
	case "error":
		icon = "×"
	}
	if icon == "" {
		return msg
	}
	return icon + " " + msg
}

func (m *model) startNotice(msg, msgType string, d time.Duration) tea.Cmd {
	m.ui.noticeMsg = msg
	m.ui.noticeType = msgType
	if msgType == "error" || msgType == "warn" {
		logging.WithComponent("ui").Warn(msg)
	}

	// bump sequence to invalidate older timers
	m.ui.noticeSeq++
	id := m.ui.noticeSeq

	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

func (m *model) errorNotice(err error) tea.Cmd {
	return m.startNotice(err.Error(), "error", noticeErrorDuration)
}

func (m *model) clearNotice(id int) {
	if id != m.ui.noticeSeq {
		return
	}
	m.ui.noticeMsg = ""
	m.ui.noticeType = ""
}
