// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// SpinnerConfig is a frame set and the rate it plays at.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// LineSpinner is shown while a stored session is checked. ASCII frames keep
// it readable on terminals without Unicode fonts.
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// Duration is the time each frame stays on screen. A non-positive FPS
// plays one frame per second.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}
