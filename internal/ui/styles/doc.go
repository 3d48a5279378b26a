// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the authapp TUI.

All colors are lipgloss AdaptiveColor values. NewTheme resolves them against
either the detected terminal background or the ui.theme config value:

	theme := styles.NewTheme(cfg.UI.Theme) // "auto", "dark" or "light"

Status helpers pair every color with an ASCII indicator ([OK], [X], [!]) so
that state is readable without color.
*/
package styles
