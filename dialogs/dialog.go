package dialogs

import tea "github.com/charmbracelet/bubbletea"

// Dialog is the common interface all modal dialogs (prompts, pickers, help)
// implement. The model forwards every key to the visible dialog and reacts
// to the messages it emits.
type Dialog interface {
	Init() tea.Cmd // optional, can return nil
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	View() string

	Focus() tea.Cmd
	Blur()
	IsVisible() bool
	Show()
	Hide()
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
