// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth composes the remote session calls into the sign-in flows.
//
// # Key Types
//
//   - Service: Register, Login and Logout over a SessionClient
//   - Credentials: form input with the local "missing info" check
//   - SessionClient: the four remote calls, satisfied by *appwrite.Client
//
// Flows run their remote calls strictly in sequence and return the remote
// error unmodified, so callers can show its message as is. Input checks are
// the caller's job (see Credentials.Validate); the flows trust their input.
//
// Resolve is the startup check: it asks the remote service for the current
// user and writes the outcome to a state.Store. Its failure means "signed
// out" and is never reported.
//
// # Usage
//
//	creds := auth.LoginCredentials(emailInput, passwordInput)
//	if err := creds.Validate(); err != nil {
//	    // show "Missing info"
//	}
//	user, err := svc.Login(ctx, creds.Email, creds.Password)
package auth
