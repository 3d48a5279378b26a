// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package appwrite

import (
	"errors"
	"fmt"
)

// Error types reported by the remote service that authapp tells apart.
const (
	TypeUserAlreadyExists      = "user_already_exists"
	TypeUserInvalidCredentials = "user_invalid_credentials"
	TypeUserSessionExists      = "user_session_already_exists"
	TypeUserSessionNotFound    = "user_session_not_found"
	TypeGeneralUnauthorized    = "general_unauthorized_scope"
	TypeGeneralArgumentInvalid = "general_argument_invalid"
	TypeProjectNotFound        = "project_not_found"
	TypeGeneralRouteNotFound   = "general_route_not_found"
	TypeGeneralServerError     = "general_server_error"
	TypeClientTransport        = "client_transport_error"
	TypeClientTimeout          = "client_timeout_error"
	TypeClientSessionStore     = "client_session_store_error"
)

// ErrNotConfigured indicates the client is missing an endpoint or project ID.
var ErrNotConfigured = errors.New("remote service not configured")

// RemoteError is the single failure kind of the Client. It carries the
// remote service's message verbatim so it can be shown to the user as is.
//
// Code is the HTTP status of the response, or 0 when no response arrived.
type RemoteError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// Error implements the error interface. It returns the message unchanged.
func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Type != "" {
		return fmt.Sprintf("%s (code %d)", e.Type, e.Code)
	}
	return fmt.Sprintf("remote error (code %d)", e.Code)
}

// IsType reports whether err is a RemoteError of the given type.
func IsType(err error, typ string) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Type == typ
}

// AsRemote extracts a RemoteError from err.
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
