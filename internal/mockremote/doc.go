// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mockremote is an in-memory stand-in for the remote account service.
//
// It implements the four account endpoints authapp uses, with the same
// request headers, error documents and fallback-cookie sessions as the hosted
// service. Tests mount Handler on an httptest.Server; `authapp mock-server`
// serves it on a local port for offline development.
//
// Endpoints:
//   - POST   /account
//   - POST   /account/sessions/email
//   - GET    /account
//   - DELETE /account/sessions/{sessionId}
//
// Passwords are stored as bcrypt hashes. Nothing is persisted.
package mockremote
