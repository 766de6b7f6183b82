package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Columns    key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	PanLeft    key.Binding
	PanRight   key.Binding
	Reset      key.Binding
	TimeWindow key.Binding
	Transform  key.Binding
	Table      key.Binding
	Info       key.Binding
	RowDown    key.Binding
	RowUp      key.Binding
	PageDown   key.Binding
	PageUp     key.Binding
	Open       key.Binding
	Save       key.Binding
	Export     key.Binding
	WritePNG   key.Binding
	Copy       key.Binding
	OpenHelp   key.Binding
	Close      key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next series"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous series"),
	),
	Columns: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "pick columns"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "pan left"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "pan right"),
	),
	Reset: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "full range"),
	),
	TimeWindow: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "time window"),
	),
	Transform: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "transform"),
	),
	Table: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "data table"),
	),
	Info: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "summary / ingest report"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "row down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "row up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdown", "page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open file"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save session"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export visible rows"),
	),
	WritePNG: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "write chart png"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy to clipboard"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close drawer"),
	),
}

// HelpGroups are the columns of the help dialog.
func (k Keymap) HelpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.PanLeft, k.PanRight, k.Reset, k.TimeWindow},
		{k.Columns, k.Transform, k.Table, k.Info, k.NextTab, k.PrevTab},
		{k.Open, k.Save, k.Export, k.WritePNG, k.Copy, k.OpenHelp, k.Quit},
	}
}
