// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
)

func TestNewTheme_Modes(t *testing.T) {
	if theme := NewTheme(ModeDark); !theme.IsDark {
		t.Error("NewTheme(dark) should be dark")
	}
	if theme := NewTheme(ModeLight); theme.IsDark {
		t.Error("NewTheme(light) should not be dark")
	}
	if theme := NewTheme(" DARK "); !theme.IsDark {
		t.Error("NewTheme should accept mixed case with whitespace")
	}
	if theme := NewTheme(ModeAuto); theme == nil {
		t.Fatal("NewTheme(auto) returned nil")
	}
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewTheme(ModeDark)
	rendered := map[string]string{
		"Title":          theme.Title.Render("x"),
		"Button":         theme.Button.Render("x"),
		"ButtonDisabled": theme.ButtonDisabled.Render("x"),
		"AlertBox":       theme.AlertBox.Render("x"),
		"Field":          theme.Field.Render("x"),
	}
	for name, out := range rendered {
		if !strings.Contains(out, "x") {
			t.Errorf("%s.Render lost content: %q", name, out)
		}
	}
}

func TestContentWidth(t *testing.T) {
	theme := NewTheme(ModeDark)

	tests := []struct {
		width int
		want  int
	}{
		{0, 60},
		{200, 60},
		{44, 40},
		{10, 20},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.ContentWidth(); got != tt.want {
			t.Errorf("ContentWidth() at width %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestStatusHelpersIncludeIndicators(t *testing.T) {
	if out := RenderError("boom"); !strings.Contains(out, StatusIndicators.Error) {
		t.Errorf("RenderError missing indicator: %q", out)
	}
	if out := RenderSuccess("ok"); !strings.Contains(out, StatusIndicators.Success) {
		t.Errorf("RenderSuccess missing indicator: %q", out)
	}
	if out := RenderWarning("hm"); !strings.Contains(out, StatusIndicators.Warning) {
		t.Errorf("RenderWarning missing indicator: %q", out)
	}
}

func TestSpinnerConfigDuration(t *testing.T) {
	if got := LineSpinner.Duration(); got != 100*time.Millisecond {
		t.Errorf("LineSpinner.Duration() = %v, want 100ms", got)
	}
	if got := (SpinnerConfig{}).Duration(); got != time.Second {
		t.Errorf("zero FPS Duration() = %v, want 1s", got)
	}
}
