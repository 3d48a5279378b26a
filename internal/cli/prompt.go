// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt.go - Interactive prompts for login and register.
//
// USABILITY: missing flags are asked for on a TTY. The password is read
// without echo.

package cli

import (
	"errors"
	"strings"

	"github.com/peterh/liner"
)

// ErrPromptAborted is returned when the user presses Ctrl+C at a prompt.
var ErrPromptAborted = errors.New("prompt aborted")

// Prompter reads interactive input.
type Prompter interface {
	Prompt(label string) (string, error)
	PasswordPrompt(label string) (string, error)
	Close() error
}

// LinePrompter is a Prompter backed by liner line editing.
type LinePrompter struct {
	line *liner.State
}

// NewLinePrompter takes over the terminal until Close is called.
func NewLinePrompter() *LinePrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinePrompter{line: line}
}

// Prompt reads one line with echo.
func (p *LinePrompter) Prompt(label string) (string, error) {
	input, err := p.line.Prompt(label)
	if err != nil {
		return "", promptError(err)
	}
	return strings.TrimRight(input, "\r\n"), nil
}

// PasswordPrompt reads one line without echo.
func (p *LinePrompter) PasswordPrompt(label string) (string, error) {
	input, err := p.line.PasswordPrompt(label)
	if err != nil {
		return "", promptError(err)
	}
	return input, nil
}

// Close restores the terminal.
func (p *LinePrompter) Close() error {
	return p.line.Close()
}

func promptError(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) {
		return ErrPromptAborted
	}
	return err
}

// askIfEmpty prompts for value when it is empty and a prompter is available.
func askIfEmpty(p Prompter, value, label string, secret bool) (string, error) {
	if value != "" || p == nil {
		return value, nil
	}
	if secret {
		return p.PasswordPrompt(label)
	}
	return p.Prompt(label)
}
