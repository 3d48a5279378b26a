// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/liongatetechnology/authapp/internal/ui/styles"
)

// DismissHint is rendered under every alert.
const DismissHint = "[enter] OK"

// Alert is a blocking notice with a title and a message. While visible the
// owning model routes every key to it and only dismissal is possible.
type Alert struct {
	Title   string
	Message string
	visible bool
	theme   *styles.Theme
}

// NewAlert creates a hidden alert.
func NewAlert(theme *styles.Theme) Alert {
	return Alert{theme: theme}
}

// Show replaces the alert contents and makes it visible.
func (a *Alert) Show(title, message string) {
	a.Title = title
	a.Message = message
	a.visible = true
}

// Dismiss hides the alert.
func (a *Alert) Dismiss() {
	a.visible = false
}

// Visible reports whether the alert is blocking input.
func (a *Alert) Visible() bool {
	return a.visible
}

// View renders the alert box wrapped to width, or nothing when hidden.
func (a Alert) View(width int) string {
	if !a.visible {
		return ""
	}
	inner := width - 6
	if inner < 20 {
		inner = 20
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		a.theme.AlertTitle.Render(styles.StatusIndicators.Error+" "+a.Title),
		a.theme.AlertMessage.Copy().Width(inner).Render(a.Message),
		"",
		a.theme.Hint.Render(DismissHint),
	)
	return a.theme.AlertBox.Render(body)
}
