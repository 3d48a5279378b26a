// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for authapp commands.
//
// Commands ALWAYS return errors and never exit. main displays the error
// once with DisplayError and exits with GetExitCode.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/auth"
	"github.com/liongatetechnology/authapp/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid usage or missing input
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or settings error
	ExitConfigError = 3
	// ExitAuthError indicates the remote rejected the credentials or session
	ExitAuthError = 4
	// ExitNetworkError indicates the remote could not be reached
	ExitNetworkError = 5
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError is a failed remote flow. Reason is the alert title the TUI
// would show ("Login failed"); Err is the remote error, kept for errors.As.
type CommandError struct {
	Command string
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, auth.AlertMessage(e.Err))
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new command error.
func NewCommandError(command, reason string, err error) error {
	return &CommandError{Command: command, Reason: reason, Err: err}
}

// UsageError is a malformed command line.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// ErrMissingArgument returns a usage error for a required argument.
func ErrMissingArgument(argName, usage string) error {
	return &UsageError{Message: fmt.Sprintf("missing %s\nUsage: %s", argName, usage)}
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err to w, as JSON in JSON mode.
func DisplayError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		DisplayErrorJSON(w, err)
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// DisplayErrorJSON writes err as a structured JSON object.
func DisplayErrorJSON(w io.Writer, err error) {
	output := map[string]interface{}{
		"error":     err.Error(),
		"success":   false,
		"exit_code": GetExitCode(err),
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		output["command"] = cmdErr.Command
		output["reason"] = cmdErr.Reason
	}
	if remote, ok := appwrite.AsRemote(err); ok {
		output["error_type"] = remote.Type
		output["code"] = remote.Code
	}
	var verr *auth.ValidationError
	if errors.As(err, &verr) {
		output["error_type"] = "missing_info"
		output["missing"] = verr.Missing
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output)
}

// GetExitCode determines the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	var ttyErr *TTYRequiredError
	if errors.Is(err, auth.ErrMissingInfo) || errors.As(err, &usageErr) || errors.As(err, &ttyErr) {
		return ExitUsageError
	}

	var cfgErr config.ValidationError
	var cfgErrs config.ValidateErrors
	if errors.As(err, &cfgErr) || errors.As(err, &cfgErrs) {
		return ExitConfigError
	}

	if errors.Is(err, context.DeadlineExceeded) || appwrite.IsType(err, appwrite.TypeClientTimeout) {
		return ExitTimeoutError
	}

	if remote, ok := appwrite.AsRemote(err); ok {
		switch {
		case remote.Type == appwrite.TypeClientTransport:
			return ExitNetworkError
		case remote.Code == http.StatusUnauthorized,
			remote.Code == http.StatusForbidden,
			remote.Code == http.StatusConflict:
			return ExitAuthError
		}
	}

	return ExitGeneralError
}
