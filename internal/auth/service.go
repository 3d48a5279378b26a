// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/logging"
	"github.com/liongatetechnology/authapp/internal/util"
)

// SessionClient is the remote account API as the flows need it.
type SessionClient interface {
	CreateAccount(ctx context.Context, userID, email, password, name string) (*appwrite.Account, error)
	CreateEmailPasswordSession(ctx context.Context, email, password string) (*appwrite.Session, error)
	GetCurrentUser(ctx context.Context) (*appwrite.User, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Service runs the sign-in flows.
type Service struct {
	client SessionClient
	log    zerolog.Logger
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = logging.Component(l, "auth") }
}

// WithIDGenerator replaces appwrite.UniqueID for new account IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService returns a Service over client.
func NewService(client SessionClient, opts ...Option) *Service {
	s := &Service{
		client: client,
		log:    logging.Nop(),
		newID:  appwrite.UniqueID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account, signs it in and returns the signed-in user.
//
// A failure after the account exists leaves the account in place; the
// orphaned ID is logged so it can be cleaned up on the remote side.
func (s *Service) Register(ctx context.Context, email, password, name string) (*appwrite.User, error) {
	start := time.Now()
	log := s.log.With().
		Str(logging.FieldOperation, "register").
		Str(logging.FieldEmail, util.MaskEmail(email)).
		Logger()

	account, err := s.client.CreateAccount(ctx, s.newID(), email, password, name)
	if err != nil {
		log.Info().Err(err).Msg("account creation failed")
		return nil, err
	}

	if _, err := s.client.CreateEmailPasswordSession(ctx, email, password); err != nil {
		log.Warn().Err(err).
			Str(logging.FieldUserID, account.ID).
			Msg("account created but sign-in failed; account left without a session")
		return nil, err
	}

	user, err := s.client.GetCurrentUser(ctx)
	if err != nil {
		log.Warn().Err(err).Str(logging.FieldUserID, account.ID).Msg("signed in but user fetch failed")
		return nil, err
	}

	log.Info().
		Str(logging.FieldUserID, user.ID).
		Dur(logging.FieldDuration, time.Since(start)).
		Msg("registered")
	return user, nil
}

// Login signs in and returns the signed-in user.
func (s *Service) Login(ctx context.Context, email, password string) (*appwrite.User, error) {
	start := time.Now()
	log := s.log.With().
		Str(logging.FieldOperation, "login").
		Str(logging.FieldEmail, util.MaskEmail(email)).
		Logger()

	if _, err := s.client.CreateEmailPasswordSession(ctx, email, password); err != nil {
		log.Info().Err(err).Msg("sign-in failed")
		return nil, err
	}

	user, err := s.client.GetCurrentUser(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("signed in but user fetch failed")
		return nil, err
	}

	log.Info().
		Str(logging.FieldUserID, user.ID).
		Dur(logging.FieldDuration, time.Since(start)).
		Msg("signed in")
	return user, nil
}

// Logout ends the current session.
func (s *Service) Logout(ctx context.Context) error {
	log := s.log.With().Str(logging.FieldOperation, "logout").Logger()
	if err := s.client.DeleteSession(ctx, appwrite.CurrentSession); err != nil {
		log.Info().Err(err).Msg("sign-out failed")
		return err
	}
	log.Info().Msg("signed out")
	return nil
}
