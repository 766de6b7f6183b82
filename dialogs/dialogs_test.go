package dialogs

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEscape}
	spaceKey = runes(" ")
)

func TestPicker_MultiToggle(t *testing.T) {
	p := NewPicker(PickColumns, "Columns", []string{"open", "high", "close"}, []string{"close"}, true)
	assert.Equal(t, []string{"close"}, p.Picked())

	p.Update(runes("k"))
	p.Update(runes("k"))
	p.Update(spaceKey)
	assert.Equal(t, []string{"open", "close"}, p.Picked())

	p.Update(runes("j"))
	p.Update(runes("j"))
	p.Update(spaceKey)
	assert.Equal(t, []string{"open"}, p.Picked())

	_, cmd := p.Update(enterKey)
	require.NotNil(t, cmd)
	assert.Equal(t, PickedMsg{Kind: PickColumns, Items: []string{"open"}}, cmd())
	assert.Contains(t, p.View(), "[x] open")
}

func TestPicker_EmptySelectionFallsBackToCursor(t *testing.T) {
	p := NewPicker(PickColumns, "Columns", []string{"a", "b"}, nil, true)
	p.Update(runes("j"))
	assert.Equal(t, []string{"b"}, p.Picked())
}

func TestPicker_Single(t *testing.T) {
	p := NewPicker(PickTransform, "Transform", []string{"Raw", "Differencing"}, []string{"Raw"}, false)
	p.Update(spaceKey)
	p.Update(runes("j"))
	p.Update(runes("j"))
	assert.Equal(t, []string{"Differencing"}, p.Picked())
	assert.NotContains(t, p.View(), "[x]")

	_, cmd := p.Update(escKey)
	require.NotNil(t, cmd)
	assert.Equal(t, PickCanceledMsg{Kind: PickTransform}, cmd())

	empty := NewPicker(PickColumns, "Columns", nil, nil, true)
	assert.Nil(t, empty.Picked())
	assert.Contains(t, empty.View(), "nothing to pick")
}

func TestPrompt_ResolvesAgainstLastDir(t *testing.T) {
	dir := t.TempDir()
	p := NewPrompt(PurposeExport, "prices-view.csv", dir)

	_, cmd := p.Update(enterKey)
	require.NotNil(t, cmd)
	assert.Equal(t, PromptConfirmedMsg{Purpose: PurposeExport, Path: filepath.Join(dir, "prices-view.csv")}, cmd())

	assert.Equal(t, "sub/x.csv", p.resolve("sub/x.csv"))
	assert.Equal(t, "/abs/x.csv", p.resolve("/abs/x.csv"))
	assert.Equal(t, filepath.Join(dir, "prices-view.csv"), p.resolve(""))
}

func TestPrompt_EmptyWithoutDefaultDoesNothing(t *testing.T) {
	p := NewPrompt(PurposeOpen, "", "")
	_, cmd := p.Update(enterKey)
	assert.Nil(t, cmd)

	_, cmd = p.Update(escKey)
	require.NotNil(t, cmd)
	assert.Equal(t, PromptCanceledMsg{Purpose: PurposeOpen}, cmd())

	p.Hide()
	assert.False(t, p.IsVisible())
	assert.Empty(t, p.View())
}

func TestHelp_Closes(t *testing.T) {
	quit := key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	h := NewHelpDialog([][]key.Binding{{quit}})
	assert.Contains(t, h.View(), "quit")

	_, cmd := h.Update(runes("x"))
	assert.Nil(t, cmd)
	assert.True(t, h.IsVisible())

	_, cmd = h.Update(runes("?"))
	require.NotNil(t, cmd)
	assert.Equal(t, HelpClosedMsg{}, cmd())
	assert.False(t, h.IsVisible())
}
