// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/gate"
	"github.com/liongatetechnology/authapp/internal/ui/components"
)

// Greeting returns the home screen headline for user.
func Greeting(user *appwrite.User) string {
	if user == nil {
		return "Hello!"
	}
	name := strings.TrimSpace(user.Name)
	if name == "" {
		return "Hello!"
	}
	return "Hello, " + name + "!"
}

// View renders the model.
func (m Model) View() string {
	var body string
	if m.phase == PhaseChecking {
		body = m.spinner.View()
	} else {
		body = m.renderScreen()
	}

	sections := []string{m.header.View(), "", body}
	if m.alert.Visible() {
		sections = append(sections, "", m.alert.View(m.theme.ContentWidth()))
	}
	sections = append(sections, "", m.renderHelp())

	content := m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	if m.theme.Width > 0 && m.theme.Height > 0 {
		return lipgloss.Place(m.theme.Width, m.theme.Height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) renderScreen() string {
	var lines []string
	switch m.screen {
	case gate.Welcome:
		lines = append(lines,
			m.theme.Title.Render("Welcome"),
			m.theme.Subtitle.Render("Sign in or create an account to continue."),
			"",
		)
	case gate.Login:
		lines = append(lines, m.theme.Title.Render("Sign in"))
	case gate.Register:
		lines = append(lines, m.theme.Title.Render("Create account"))
	case gate.Home:
		user := m.store.Current()
		lines = append(lines, m.theme.Greeting.Render(Greeting(user)))
		if user != nil && user.Email != "" {
			lines = append(lines, m.theme.Email.Render(user.Email))
		}
		lines = append(lines, "")
	}

	// Buttons on one row, fields and links on their own lines.
	var row []string
	flush := func() {
		if len(row) > 0 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	for i, it := range m.focusItems() {
		focused := i == m.focus && !m.alert.Visible()
		switch {
		case it.field != nil:
			flush()
			lines = append(lines, it.field.View())
		case it.button.Kind == components.ButtonLink:
			flush()
			lines = append(lines, "", it.button.Render(m.theme, focused))
		default:
			row = append(row, it.button.Render(m.theme, focused))
		}
	}
	flush()

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderHelp() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Hint.Render(strings.Join(parts, "  "))
}
