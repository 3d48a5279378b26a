// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/liongatetechnology/authapp/internal/ui/styles"
)

// Header is the title bar naming the app and the remote it talks to.
type Header struct {
	Title    string
	Endpoint string
	Project  string
	theme    *styles.Theme
}

// NewHeader creates a header with the default title.
func NewHeader(theme *styles.Theme, endpoint, project string) Header {
	return Header{Title: "authapp", Endpoint: endpoint, Project: project, theme: theme}
}

// View renders the header line.
func (h Header) View() string {
	right := h.Endpoint
	if h.Project != "" {
		right += " [" + h.Project + "]"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		h.theme.Title.Copy().MarginBottom(0).Render(h.Title),
		"  ",
		h.theme.Hint.Render(right),
	)
}
