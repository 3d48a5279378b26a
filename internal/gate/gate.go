// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gate decides which screen may be shown for a given sign-in state.
package gate

import "github.com/liongatetechnology/authapp/internal/appwrite"

// Screen identifies a top-level view.
type Screen int

const (
	Welcome Screen = iota
	Login
	Register
	Home
)

func (s Screen) String() string {
	switch s {
	case Welcome:
		return "welcome"
	case Login:
		return "login"
	case Register:
		return "register"
	case Home:
		return "home"
	default:
		return "unknown"
	}
}

// Public reports whether the screen is meant for signed-out users.
func (s Screen) Public() bool {
	return s == Welcome || s == Login || s == Register
}

// Resolve returns the screen to show instead of screen, if any.
// Signed-in users are sent home from the public screens; signed-out users
// are sent to welcome from home.
func Resolve(screen Screen, user *appwrite.User) (target Screen, redirected bool) {
	switch {
	case user != nil && screen.Public():
		return Home, true
	case user == nil && screen == Home:
		return Welcome, true
	default:
		return screen, false
	}
}
