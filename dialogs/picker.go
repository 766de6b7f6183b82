package dialogs

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickerKind distinguishes pickers so the model knows what was picked.
type PickerKind int

const (
	PickColumns PickerKind = iota
	PickTransform
)

type (
	PickedMsg struct {
		Kind  PickerKind
		Items []string
	}
	PickCanceledMsg struct{ Kind PickerKind }
)

// Picker selects one item, or several when multi is set.
type Picker struct {
	kind     PickerKind
	title    string
	items    []string
	selected []bool
	multi    bool
	cursor   int
	visible  bool
}

// NewPicker lists items; the ones in chosen start selected and the cursor
// starts on the first of them.
func NewPicker(kind PickerKind, title string, items []string, chosen []string, multi bool) *Picker {
	p := &Picker{
		kind:     kind,
		title:    title,
		items:    append([]string(nil), items...),
		selected: make([]bool, len(items)),
		multi:    multi,
		visible:  true,
		cursor:   -1,
	}
	for i, it := range items {
		for _, c := range chosen {
			if it == c {
				p.selected[i] = true
				if p.cursor < 0 {
					p.cursor = i
				}
			}
		}
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	return p
}

func (p Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok || !p.visible {
		return p, nil
	}
	switch m.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case " ":
		if p.multi && len(p.items) > 0 {
			p.selected[p.cursor] = !p.selected[p.cursor]
		}
	case "enter":
		return p, emit(PickedMsg{Kind: p.kind, Items: p.Picked()})
	case "esc":
		return p, emit(PickCanceledMsg{Kind: p.kind})
	}
	return p, nil
}

// Picked is the current choice: the selected items in list order for a
// multi picker (the item under the cursor if none is selected), otherwise
// the item under the cursor.
func (p *Picker) Picked() []string {
	if len(p.items) == 0 {
		return nil
	}
	if !p.multi {
		return []string{p.items[p.cursor]}
	}
	var out []string
	for i, it := range p.items {
		if p.selected[i] {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		out = []string{p.items[p.cursor]}
	}
	return out
}

func (p Picker) View() string {
	if !p.visible {
		return ""
	}
	var lines []string
	lines = append(lines, title.Render(p.title), "")
	if len(p.items) == 0 {
		lines = append(lines, hint.Render("(nothing to pick)"))
	}
	for i, it := range p.items {
		pointer := "  "
		if i == p.cursor {
			pointer = cursor.Render("▸ ")
		}
		mark := ""
		if p.multi {
			mark = "[ ] "
			if p.selected[i] {
				mark = "[x] "
			}
		}
		lines = append(lines, fmt.Sprintf("%s%s%s", pointer, mark, it))
	}
	help := "↑/↓ move • enter pick • esc cancel"
	if p.multi {
		help = "↑/↓ move • space toggle • enter apply • esc cancel"
	}
	lines = append(lines, "", hint.Render(help))
	return box.Render(strings.Join(lines, "\n"))
}

func (p *Picker) Show()          { p.visible = true }
func (p *Picker) Hide()          { p.visible = false }
func (p *Picker) Focus() tea.Cmd { return nil }
func (p *Picker) Blur()          {}
func (p Picker) IsVisible() bool { return p.visible }
