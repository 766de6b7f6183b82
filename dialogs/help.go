package dialogs

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type HelpClosedMsg struct{}

// Help lists key bindings in columns.
type Help struct {
	visible bool
	groups  [][]key.Binding
	model   help.Model
}

func (d Help) Init() tea.Cmd { return nil }

// NewHelpDialog creates a help dialog; each group renders as one column.
func NewHelpDialog(groups [][]key.Binding) *Help {
	h := help.New()
	h.ShowAll = true
	h.FullSeparator = "    "
	return &Help{visible: true, groups: groups, model: h}
}

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter", "esc", "?", "q":
			d.visible = false
			return d, emit(HelpClosedMsg{})
		}
	}
	return d, nil
}

func (d Help) View() string {
	if !d.visible {
		return ""
	}
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		title.Render("Keys"),
		d.model.FullHelpView(d.groups),
		hint.Render("mouse: wheel zooms at the pointer • drag pans\nenter/esc to return"),
	)
	return box.Width(72).Render(content)
}

func (d *Help) Show() { d.visible = true }
func (d *Help) Hide() { d.visible = false }

func (d *Help) Focus() tea.Cmd { return nil }
func (d *Help) Blur()          {}
func (d Help) IsVisible() bool { return d.visible }
