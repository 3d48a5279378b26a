// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/auth"
	"github.com/liongatetechnology/authapp/internal/config"
	"github.com/liongatetechnology/authapp/internal/logging"
	"github.com/liongatetechnology/authapp/internal/sessionstore"
	"github.com/liongatetechnology/authapp/internal/state"
)

// Env is everything a command needs. It is built once per process.
type Env struct {
	Config *config.Config
	Logger zerolog.Logger

	Store  sessionstore.Store
	Client *appwrite.Client
	Auth   *auth.Service
	State  *state.Store

	Out    io.Writer
	ErrOut io.Writer

	// Prompter asks for missing credentials. Nil disables prompting.
	Prompter Prompter
}

// NewEnv opens the session store and builds the client and service.
func NewEnv(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Env, error) {
	opts, err := cfg.SessionOptions()
	if err != nil {
		return nil, err
	}
	store, err := sessionstore.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	client, err := appwrite.NewClient(appwrite.Config{
		Endpoint:  cfg.Remote.Endpoint,
		ProjectID: cfg.Remote.ProjectID,
		Platform:  cfg.Remote.Platform,
		Timeout:   cfg.RequestTimeout(),
		Store:     store,
		Logger:    &logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Env{
		Config: cfg,
		Logger: logging.Component(logger, "cli"),
		Store:  store,
		Client: client,
		Auth:   auth.NewService(client, auth.WithLogger(logger)),
		State:  state.New(),
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}, nil
}

// EnablePrompts attaches a terminal prompter when stdin is a TTY.
func (e *Env) EnablePrompts() {
	if e.Prompter == nil && CanPrompt() {
		e.Prompter = NewLinePrompter()
	}
}

// Close releases the prompter and the session store.
func (e *Env) Close() error {
	if e.Prompter != nil {
		_ = e.Prompter.Close()
		e.Prompter = nil
	}
	return e.Store.Close()
}
