// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/liongatetechnology/authapp/internal/ui/styles"
)

// FieldCharLimit caps every form field.
const FieldCharLimit = 256

// TextField is a labelled single-line input.
type TextField struct {
	Label string
	input textinput.Model
	theme *styles.Theme
}

// NewTextField creates a labelled field. Secret fields echo a mask
// character instead of their contents.
func NewTextField(theme *styles.Theme, label, placeholder string, secret bool) *TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = FieldCharLimit
	ti.Width = 40
	ti.Prompt = ""

	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Cyan)

	if secret {
		// SECURITY: never echo the password
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}

	return &TextField{Label: label, input: ti, theme: theme}
}

// Focus focuses the field.
func (f *TextField) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes focus from the field.
func (f *TextField) Blur() {
	f.input.Blur()
}

// Focused returns whether the field is focused.
func (f *TextField) Focused() bool {
	return f.input.Focused()
}

// Value returns the raw contents.
func (f *TextField) Value() string {
	return f.input.Value()
}

// SetValue replaces the contents.
func (f *TextField) SetValue(value string) {
	f.input.SetValue(value)
}

// Reset clears the contents.
func (f *TextField) Reset() {
	f.input.Reset()
}

// SetWidth sizes the field to the given outer width.
func (f *TextField) SetWidth(width int) {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	f.input.Width = inner
}

// Update forwards input to the underlying textinput.
func (f *TextField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// View renders the label above the bordered input.
func (f *TextField) View() string {
	box := f.theme.Field
	if f.input.Focused() {
		box = f.theme.FieldFocused
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		f.theme.FieldLabel.Render(f.Label),
		box.Render(f.input.View()),
	)
}
