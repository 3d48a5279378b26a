// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/liongatetechnology/authapp/internal/ui/styles"
)

// ButtonKind selects the fill color.
type ButtonKind int

const (
	ButtonPrimary ButtonKind = iota
	ButtonDanger
	ButtonAccent
	// ButtonLink renders as an inline link rather than a filled button.
	ButtonLink
)

// Button is a focusable action. A disabled button renders greyed out and
// the owning model must not trigger it.
type Button struct {
	Label    string
	Kind     ButtonKind
	Disabled bool
}

// Render draws the button.
func (b Button) Render(theme *styles.Theme, focused bool) string {
	label := b.Label
	if focused {
		label = "> " + label
	}

	if b.Kind == ButtonLink {
		if b.Disabled {
			return theme.Hint.Render(label)
		}
		return theme.Link.Render(label)
	}

	style := theme.Button
	switch {
	case b.Disabled:
		style = theme.ButtonDisabled
	case b.Kind == ButtonDanger:
		style = theme.ButtonDanger
	case b.Kind == ButtonAccent:
		style = theme.ButtonAccent
	}
	if focused && !b.Disabled {
		style = style.Copy().Inherit(theme.ButtonFocused)
	}
	return style.Render(label)
}
