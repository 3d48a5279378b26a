// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sessionstore

import (
	"context"
	"sync"
)

// Memory keeps the cookie in process memory.
type Memory struct {
	mu     sync.Mutex
	cookie string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cookie, nil
}

func (m *Memory) Save(_ context.Context, cookie string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cookie = cookie
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cookie = ""
	return nil
}

func (m *Memory) Close() error { return nil }
