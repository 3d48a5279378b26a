// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package appwrite

import (
	"strings"

	"github.com/google/uuid"
)

// CurrentSession is the session ID that addresses the caller's own session.
const CurrentSession = "current"

// User is the account snapshot returned by the remote service.
// authapp never mutates it.
type User struct {
	ID                string         `json:"$id"`
	CreatedAt         string         `json:"$createdAt,omitempty"`
	UpdatedAt         string         `json:"$updatedAt,omitempty"`
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	Registration      string         `json:"registration,omitempty"`
	Status            bool           `json:"status"`
	EmailVerification bool           `json:"emailVerification"`
	Prefs             map[string]any `json:"prefs"`
}

// DisplayName returns the name, falling back to the email when the account
// was created without one.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return u.Email
}

// Account is what CreateAccount returns. The remote service answers account
// creation with the same document it uses for the current user.
type Account = User

// Session is the metadata of a session created by the remote service.
// The secret itself travels in the fallback cookie, not in this document.
type Session struct {
	ID        string `json:"$id"`
	CreatedAt string `json:"$createdAt,omitempty"`
	UserID    string `json:"userId"`
	Expire    string `json:"expire,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Current   bool   `json:"current"`
}

// UniqueID returns a new identifier the remote service accepts as a user ID:
// at most 36 characters from [a-zA-Z0-9], not starting with a special char.
func UniqueID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// createAccountRequest is the body of POST /account.
type createAccountRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// createSessionRequest is the body of POST /account/sessions/email.
type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
