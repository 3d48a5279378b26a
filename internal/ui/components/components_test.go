// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liongatetechnology/authapp/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme(styles.ModeDark)
}

func TestSpinner_Lifecycle(t *testing.T) {
	s := NewSpinner(testTheme())
	s.SetMessage("Checking session…")

	assert.False(t, s.IsActive())
	assert.Empty(t, s.View())
	assert.Zero(t, s.Elapsed())

	cmd := s.Start()
	require.NotNil(t, cmd)
	assert.True(t, s.IsActive())
	assert.Contains(t, s.View(), "Checking session…")

	s.Stop()
	next, cmd := s.Update(s.Tick()())
	assert.Nil(t, cmd, "stopped spinner drops ticks")
	assert.Empty(t, next.View())
}

func TestAlert_ShowDismiss(t *testing.T) {
	a := NewAlert(testTheme())
	assert.False(t, a.Visible())
	assert.Empty(t, a.View(60))

	a.Show("Login failed", "Invalid credentials.")
	require.True(t, a.Visible())
	view := a.View(60)
	assert.Contains(t, view, "Login failed")
	assert.Contains(t, view, "Invalid credentials.")
	assert.Contains(t, view, DismissHint)

	a.Dismiss()
	assert.False(t, a.Visible())
}

func TestTextField_SecretIsMasked(t *testing.T) {
	f := NewTextField(testTheme(), "Password", "", true)
	f.Focus()
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hunter22")})

	assert.Equal(t, "hunter22", f.Value())
	assert.NotContains(t, f.View(), "hunter22")
	assert.Contains(t, f.View(), "Password")

	f.Reset()
	assert.Empty(t, f.Value())
}

func TestTextField_OnlyTypesWhenFocused(t *testing.T) {
	f := NewTextField(testTheme(), "Email", "you@example.com", false)
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Empty(t, f.Value())

	f.Focus()
	assert.True(t, f.Focused())
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "x", f.Value())

	f.Blur()
	assert.False(t, f.Focused())
}

func TestButton_Render(t *testing.T) {
	theme := testTheme()

	b := Button{Label: "Sign in"}
	assert.Contains(t, b.Render(theme, false), "Sign in")
	assert.Contains(t, b.Render(theme, true), "> Sign in")

	b.Disabled = true
	assert.Contains(t, b.Render(theme, true), "Sign in")

	link := Button{Label: "Create an account", Kind: ButtonLink}
	assert.True(t, strings.Contains(link.Render(theme, false), "Create an account"))
}

func TestHeader_View(t *testing.T) {
	h := NewHeader(testTheme(), "https://example.test/v1", "proj")
	view := h.View()
	assert.Contains(t, view, "authapp")
	assert.Contains(t, view, "https://example.test/v1")
	assert.Contains(t, view, "[proj]")
}
