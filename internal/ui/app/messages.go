// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/liongatetechnology/authapp/internal/appwrite"

// ResolvedMsg is sent when the startup resolver finishes.
type ResolvedMsg struct {
	User *appwrite.User
}

// StateChangedMsg is sent after the state store notifies a change.
type StateChangedMsg struct{}

// LoginResultMsg carries the outcome of the login flow.
type LoginResultMsg struct {
	User *appwrite.User
	Err  error
}

// RegisterResultMsg carries the outcome of the register flow.
type RegisterResultMsg struct {
	User *appwrite.User
	Err  error
}

// LogoutResultMsg carries the outcome of the logout flow.
type LogoutResultMsg struct {
	Err error
}
