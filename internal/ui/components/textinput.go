package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput with a fallback value used when the
// user submits an empty field.
type TextInput struct {
	Model    textinput.Model
	Fallback string
}

// NewTextInput creates a focused text input. The fallback doubles as the
// placeholder so the user sees what an empty submit means.
func NewTextInput(fallback string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = fallback
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Fallback: fallback}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the entered text, or the fallback when nothing was typed.
func (t TextInput) Value() string {
	if v := t.Model.Value(); v != "" {
		return v
	}
	return t.Fallback
}
