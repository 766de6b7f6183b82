package dialogs

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-series/logging"
)

// Purpose says what a confirmed path is for.
type Purpose int

const (
	PurposeOpen Purpose = iota
	PurposeSave
	PurposeExport
	PurposePNG
)

func (p Purpose) prompt() string {
	switch p {
	case PurposeSave:
		return "Save session as: "
	case PurposeExport:
		return "Export rows as: "
	case PurposePNG:
		return "Write chart to: "
	default:
		return "Open file: "
	}
}

func (p Purpose) verb() string {
	switch p {
	case PurposeSave:
		return "save"
	case PurposeExport:
		return "export"
	case PurposePNG:
		return "write"
	default:
		return "open"
	}
}

// --- Messages ---------------------------------------------------------------

type (
	PromptConfirmedMsg struct {
		Purpose Purpose
		Path    string
	}
	PromptCanceledMsg struct{ Purpose Purpose }
)

// Prompt asks for a single file path.
type Prompt struct {
	purpose Purpose
	input   textinput.Model
	visible bool
	// relative names are resolved against lastDir when set
	lastDir string
}

func (d Prompt) Init() tea.Cmd { return d.input.Focus() }

func NewPrompt(purpose Purpose, defaultName, lastDir string) *Prompt {
	ti := textinput.New()
	ti.Placeholder = defaultName
	ti.Prompt = purpose.prompt()
	ti.CharLimit = 256
	ti.Width = 50
	if defaultName != "" {
		ti.SetValue(defaultName)
	}
	ti.Focus()
	return &Prompt{purpose: purpose, input: ti, visible: true, lastDir: lastDir}
}

func (d *Prompt) Purpose() Purpose { return d.purpose }

func (d *Prompt) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			path := d.resolve(d.input.Value())
			if path == "" {
				return d, nil
			}
			logging.Debugf("prompt: %s confirmed %q", d.purpose.verb(), path)
			return d, emit(PromptConfirmedMsg{Purpose: d.purpose, Path: path})
		case "esc":
			logging.Debugf("prompt: %s canceled", d.purpose.verb())
			return d, emit(PromptCanceledMsg{Purpose: d.purpose})
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *Prompt) resolve(val string) string {
	if val == "" {
		val = d.input.Placeholder
	}
	if val == "" {
		return ""
	}
	if d.lastDir != "" && !filepath.IsAbs(val) && filepath.Dir(val) == "." {
		return filepath.Join(d.lastDir, filepath.Base(val))
	}
	return val
}

func (d Prompt) View() string {
	if !d.visible {
		return ""
	}
	help := hint.Render(fmt.Sprintf("enter to %s • esc to cancel", d.purpose.verb()))
	return box.Render(fmt.Sprintf("%s\n\n%s", d.input.View(), help))
}

func (d *Prompt) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Prompt) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Prompt) Focus() tea.Cmd { return d.input.Focus() }
func (d *Prompt) Blur()          { d.input.Blur() }
func (d Prompt) IsVisible() bool { return d.visible }
