// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/liongatetechnology/authapp/internal/appwrite"
	"github.com/liongatetechnology/authapp/internal/logging"
	"github.com/liongatetechnology/authapp/internal/state"
)

// Resolve fetches the current user and records the outcome in store.
// Any error means there is no usable session: the store is cleared and the
// error is logged at debug level only.
func Resolve(ctx context.Context, client SessionClient, store *state.Store, logger zerolog.Logger) *appwrite.User {
	log := logging.Component(logger, "auth").With().Str(logging.FieldOperation, "resolve").Logger()

	user, err := client.GetCurrentUser(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("no active session")
		store.Set(nil)
		return nil
	}

	log.Debug().Str(logging.FieldUserID, user.ID).Msg("session restored")
	store.Set(user)
	return user
}
