// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login, register, logout and whoami commands.
//
// Each command runs the same flow the TUI runs and reports failures with
// the same alert title and message.

package cli

import (
	"context"
	"fmt"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/auth"
)

// Failure reasons, matching the TUI alert titles.
const (
	ReasonLoginFailed    = "Login failed"
	ReasonRegisterFailed = "Register failed"
	ReasonLogoutFailed   = "Logout failed"
)

// UserOutput is the JSON payload describing a user.
type UserOutput struct {
	SignedIn bool   `json:"signed_in"`
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Verified bool   `json:"email_verified,omitempty"`
}

func userOutput(u *appwrite.User) UserOutput {
	if u == nil {
		return UserOutput{}
	}
	return UserOutput{
		SignedIn: true,
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Verified: u.EmailVerification,
	}
}

// =============================================================================
// LOGIN / REGISTER
// =============================================================================

// RunLogin signs in with --email and --password, prompting for what is missing.
func RunLogin(ctx context.Context, env *Env, args Args) error {
	email, err := askIfEmpty(env.Prompter, args.Email, "Email: ", false)
	if err != nil {
		return err
	}
	password, err := askIfEmpty(env.Prompter, args.Password, "Password: ", true)
	if err != nil {
		return err
	}

	creds := auth.LoginCredentials(email, password)
	if err := creds.Validate(); err != nil {
		return NewCommandError("login", auth.MissingInfoTitle, err)
	}

	user, err := env.Auth.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return NewCommandError("login", ReasonLoginFailed, err)
	}
	env.State.Set(user)
	return printSignedIn(env, args, "login", user)
}

// RunRegister creates an account and signs it in.
func RunRegister(ctx context.Context, env *Env, args Args) error {
	name, err := askIfEmpty(env.Prompter, args.Name, "Name: ", false)
	if err != nil {
		return err
	}
	email, err := askIfEmpty(env.Prompter, args.Email, "Email: ", false)
	if err != nil {
		return err
	}
	password, err := askIfEmpty(env.Prompter, args.Password, "Password: ", true)
	if err != nil {
		return err
	}

	creds := auth.RegisterCredentials(name, email, password)
	if err := creds.Validate(); err != nil {
		return NewCommandError("register", auth.MissingInfoTitle, err)
	}

	user, err := env.Auth.Register(ctx, creds.Email, creds.Password, creds.Name)
	if err != nil {
		return NewCommandError("register", ReasonRegisterFailed, err)
	}
	env.State.Set(user)
	return printSignedIn(env, args, "register", user)
}

func printSignedIn(env *Env, args Args, command string, user *appwrite.User) error {
	if args.JSON {
		return NewJSONResponse(command, userOutput(user)).Write(env.Out)
	}
	fmt.Fprintf(env.Out, "%s Signed in as %s\n", SuccessStyle.Render("[OK]"), user.DisplayName())
	if user.Email != "" && user.Email != user.DisplayName() {
		fmt.Fprintln(env.Out, DimStyle.Render("  "+user.Email))
	}
	return nil
}

// =============================================================================
// LOGOUT
// =============================================================================

// LogoutOutput is the JSON payload of logout.
type LogoutOutput struct {
	SignedOut bool `json:"signed_out"`
}

// RunLogout ends the current session. On failure the signed-in state is kept.
func RunLogout(ctx context.Context, env *Env, args Args) error {
	if err := env.Auth.Logout(ctx); err != nil {
		return NewCommandError("logout", ReasonLogoutFailed, err)
	}
	env.State.Clear()

	if args.JSON {
		return NewJSONResponse("logout", LogoutOutput{SignedOut: true}).Write(env.Out)
	}
	fmt.Fprintf(env.Out, "%s Signed out\n", SuccessStyle.Render("[OK]"))
	return nil
}

// =============================================================================
// WHOAMI
// =============================================================================

// RunWhoami resolves the stored session and prints the user. No session is
// not an error.
func RunWhoami(ctx context.Context, env *Env, args Args) error {
	user := auth.Resolve(ctx, env.Client, env.State, env.Logger)

	if args.JSON {
		return NewJSONResponse("whoami", userOutput(user)).Write(env.Out)
	}
	if user == nil {
		fmt.Fprintln(env.Out, "Not signed in.")
		return nil
	}
	fmt.Fprintln(env.Out, RenderField("Name:", user.Name))
	fmt.Fprintln(env.Out, RenderField("Email:", user.Email))
	fmt.Fprintln(env.Out, RenderField("ID:", user.ID))
	return nil
}
