// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/liongatetechnology/authapp/internal/auth"
	"github.com/liongatetechnology/authapp/internal/sessionstore"
)

// StatusOutput is the payload of `authapp status --json`.
type StatusOutput struct {
	Endpoint         string      `json:"endpoint"`
	Project          string      `json:"project"`
	Platform         string      `json:"platform,omitempty"`
	TimeoutSecs      int         `json:"timeout_secs"`
	Store            string      `json:"store"`
	StoreLocation    string      `json:"store_location,omitempty"`
	HasSessionCookie bool        `json:"has_session_cookie"`
	User             *UserOutput `json:"user"`
}

// RunStatus prints the remote, the session store and the session state.
// The session is only checked against the remote when a cookie is stored.
func RunStatus(ctx context.Context, env *Env, args Args) error {
	cfg := env.Config
	opts, err := cfg.SessionOptions()
	if err != nil {
		return err
	}

	out := StatusOutput{
		Endpoint:    env.Client.Endpoint(),
		Project:     env.Client.ProjectID(),
		Platform:    env.Client.Platform(),
		TimeoutSecs: int(cfg.RequestTimeout().Seconds()),
		Store:       string(opts.Kind),
	}
	switch opts.Kind {
	case sessionstore.KindFile, sessionstore.KindSQLite:
		out.StoreLocation = opts.Path
	case sessionstore.KindRedis:
		out.StoreLocation = opts.RedisAddr
	}

	has, err := env.Client.HasSessionCookie(ctx)
	if err != nil {
		return fmt.Errorf("read session store: %w", err)
	}
	out.HasSessionCookie = has
	if has {
		if user := auth.Resolve(ctx, env.Client, env.State, env.Logger); user != nil {
			u := userOutput(user)
			out.User = &u
		}
	}

	if args.JSON {
		return NewJSONResponse("status", out).Write(env.Out)
	}

	w := env.Out
	fmt.Fprintln(w, TitleStyle.Render("authapp status"))
	fmt.Fprintln(w, RenderField("Endpoint:", out.Endpoint))
	fmt.Fprintln(w, RenderField("Project:", out.Project))
	if out.Platform != "" {
		fmt.Fprintln(w, RenderField("Platform:", out.Platform))
	}
	fmt.Fprintln(w, RenderField("Timeout:", fmt.Sprintf("%ds", out.TimeoutSecs)))
	store := out.Store
	if out.StoreLocation != "" {
		store += " (" + out.StoreLocation + ")"
	}
	fmt.Fprintln(w, RenderField("Store:", store))
	fmt.Fprintln(w, RenderSeparator())

	switch {
	case out.User != nil:
		fmt.Fprintln(w, RenderField("Session:", SuccessStyle.Render("signed in as "+out.User.Email)))
	case out.HasSessionCookie:
		fmt.Fprintln(w, RenderField("Session:", WarningStyle.Render("stored session is no longer valid")))
	default:
		fmt.Fprintln(w, RenderField("Session:", DimStyle.Render("not signed in")))
	}
	if opts.Kind == sessionstore.KindMemory {
		fmt.Fprintln(w, DimStyle.Render("Sessions are not kept between runs with the memory store."))
	}
	return nil
}
