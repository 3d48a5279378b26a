// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store persists the session cookie for one project.
type Store interface {
	// Load returns the stored cookie, or "" when nothing is stored.
	Load(ctx context.Context) (string, error)
	// Save replaces the stored cookie.
	Save(ctx context.Context, cookie string) error
	// Clear removes the stored cookie. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	// Close releases any underlying resources.
	Close() error
}

// Kind names a Store implementation.
type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
)

// ErrUnknownStore is returned by Open for an unrecognised Kind.
var ErrUnknownStore = errors.New("unknown session store")

// Options selects and configures a Store.
type Options struct {
	Kind Kind
	// Path is the file or database path for KindFile and KindSQLite.
	Path string
	// Namespace separates sessions of different projects sharing one backend.
	Namespace string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// ParseKind converts a config value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindMemory, KindFile, KindSQLite, KindRedis:
		return k, nil
	case "":
		return KindMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStore, s)
	}
}

// Open constructs the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch opts.Kind {
	case KindMemory, "":
		return NewMemory(), nil
	case KindFile:
		var f *File
		if f, err = NewFile(opts.Path, opts.Namespace); err == nil {
			store = f
		}
	case KindSQLite:
		var db *SQLite
		if db, err = OpenSQLite(ctx, opts.Path, opts.Namespace); err == nil {
			store = db
		}
	case KindRedis:
		var r *Redis
		r, err = OpenRedis(ctx, RedisOptions{
			Addr:      opts.RedisAddr,
			Password:  opts.RedisPassword,
			DB:        opts.RedisDB,
			Namespace: opts.Namespace,
		})
		if err == nil {
			store = r
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, opts.Kind)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
