// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/liongatetechnology/authapp/internal/util"
)

// storedSession is the on-disk document written by File.
type storedSession struct {
	Namespace string    `json:"namespace"`
	Cookie    string    `json:"cookie"`
	UpdatedAt time.Time `json:"updated_at"`
}

// File keeps the cookie in a JSON document on disk.
// A document written for a different namespace is treated as empty.
type File struct {
	mu        sync.Mutex
	path      string
	namespace string
}

// NewFile returns a file store at path, creating the parent directory.
func NewFile(path, namespace string) (*File, error) {
	if path == "" {
		return nil, errors.New("session file path is empty")
	}
	// SECURITY: the cookie grants account access, keep the directory private
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &File{path: path, namespace: namespace}, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

func (f *File) Load(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	var doc storedSession
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("failed to parse session file: %w", err)
	}
	if doc.Namespace != f.namespace {
		return "", nil
	}
	return doc.Cookie, nil
}

func (f *File) Save(_ context.Context, cookie string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(storedSession{
		Namespace: f.namespace,
		Cookie:    cookie,
		UpdatedAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	// RELIABILITY: atomic write so a crash never leaves a half-written cookie
	if err := util.AtomicWriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (f *File) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (f *File) Close() error { return nil }
