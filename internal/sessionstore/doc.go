// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sessionstore keeps the opaque session cookie handed out by the
// remote account service.
//
// The remote service identifies the caller's session by a cookie it returns
// after a session is created. The client never interprets that value; it only
// stores it and sends it back. Where it is stored decides whether a sign-in
// survives a restart of authapp.
//
// # Implementations
//
//   - Memory: process lifetime only (default)
//   - File: JSON document written atomically with 0600 permissions
//   - SQLite: single-row table via modernc.org/sqlite (pure Go, no cgo)
//   - Redis: one key per project via go-redis
//
// # Usage
//
//	store, err := sessionstore.Open(ctx, sessionstore.Options{
//	    Kind:      sessionstore.KindFile,
//	    Path:      "~/.authapp/session.json",
//	    Namespace: projectID,
//	})
//	defer store.Close()
package sessionstore
