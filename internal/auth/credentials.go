// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/util"
)

// ErrMissingInfo indicates a required form field is empty.
var ErrMissingInfo = errors.New("missing info")

// Alert texts for a failed local check.
const (
	MissingInfoTitle       = "Missing info"
	missingLoginMessage    = "Please enter email and password."
	missingRegisterMessage = "Please enter name, email, and password."
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Credentials is the input of the login and register forms.
// Email and name are normalized; the password is kept byte for byte.
type Credentials struct {
	Name     string `validate:"required_if=Register true"`
	Email    string `validate:"required"`
	Password string `validate:"required"`

	// Register marks register-form input, which also needs a name.
	Register bool
}

// LoginCredentials builds login-form input.
func LoginCredentials(email, password string) Credentials {
	return Credentials{
		Email:    util.NormalizeField(email),
		Password: password,
	}
}

// RegisterCredentials builds register-form input.
func RegisterCredentials(name, email, password string) Credentials {
	return Credentials{
		Name:     util.NormalizeField(name),
		Email:    util.NormalizeField(email),
		Password: password,
		Register: true,
	}
}

// ValidationError lists the empty fields. It wraps ErrMissingInfo.
type ValidationError struct {
	Missing  []string
	register bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingInfo, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingInfo
}

// Message is the text shown to the user.
func (e *ValidationError) Message() string {
	if e.register {
		return missingRegisterMessage
	}
	return missingLoginMessage
}

// Validate reports empty required fields. It never touches the network.
func (c Credentials) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrMissingInfo, err)
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	return &ValidationError{Missing: missing, register: c.Register}
}

// AlertMessage returns the user-facing text for err: the message of a
// validation or remote error, or "Unknown error".
func AlertMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message()
	}
	if remote, ok := appwrite.AsRemote(err); ok && strings.TrimSpace(remote.Message) != "" {
		return remote.Message
	}
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		return err.Error()
	}
	return "Unknown error"
}
