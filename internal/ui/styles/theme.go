// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme. These match the ui.theme config values.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// SCREEN STYLES
	// ==========================================================================

	App      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Hint     lipgloss.Style
	Link     lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FieldLabel   lipgloss.Style
	Field        lipgloss.Style
	FieldFocused lipgloss.Style

	// ==========================================================================
	// BUTTON STYLES
	// ==========================================================================

	Button         lipgloss.Style
	ButtonDanger   lipgloss.Style
	ButtonAccent   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	// ==========================================================================
	// ALERT AND STATUS STYLES
	// ==========================================================================

	AlertBox     lipgloss.Style
	AlertTitle   lipgloss.Style
	AlertMessage lipgloss.Style
	Spinner      lipgloss.Style
	Greeting     lipgloss.Style
	Email        lipgloss.Style
}

// NewTheme creates a theme for the given mode. An empty or unknown mode
// falls back to terminal background detection.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeDark:
		isDark = true
	case ModeLight:
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	// AdaptiveColor resolves against the default renderer.
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(1, 2)

	t.Title = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		MarginBottom(1)

	t.Subtitle = lipgloss.NewStyle().Foreground(TextSecondary)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Link = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Field = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.FieldFocused = t.Field.Copy().BorderForeground(FocusRing)

	button := lipgloss.NewStyle().
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	t.Button = button.Copy().Background(ButtonPrimary)
	t.ButtonDanger = button.Copy().Background(ButtonDanger)
	t.ButtonAccent = button.Copy().Background(ButtonAccent)
	t.ButtonDisabled = button.Copy().Background(ButtonDisabled).Bold(false)
	t.ButtonFocused = lipgloss.NewStyle().Underline(true)

	t.AlertBox = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 2)

	t.AlertTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.AlertMessage = lipgloss.NewStyle().Foreground(TextPrimary)

	t.Spinner = lipgloss.NewStyle().Foreground(Cyan)

	t.Greeting = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.Email = lipgloss.NewStyle().Foreground(TextSecondary)
}

// SetSize records the terminal size.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// ContentWidth returns the width available to forms, capped for readability.
func (t *Theme) ContentWidth() int {
	const maxWidth = 60
	w := t.Width - 4
	if w <= 0 || w > maxWidth {
		return maxWidth
	}
	if w < 20 {
		return 20
	}
	return w
}
