// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state holds the signed-in user for the life of the process.
//
// A Store is created once at startup and passed to whatever needs it; there
// is no package-level instance. Subscribers are called synchronously, in
// subscription order, after every change.
package state

import (
	"sync"

	"github.com/liongatetechnology/authapp/internal/appwrite"
)

// Listener receives the new user, or nil after sign-out.
type Listener func(user *appwrite.User)

// Store holds at most one user snapshot.
type Store struct {
	mu        sync.RWMutex
	user      *appwrite.User
	listeners map[uint64]Listener
	order     []uint64
	nextID    uint64
}

// New returns an empty Store.
func New() *Store {
	return &Store{listeners: make(map[uint64]Listener)}
}

// Current returns the signed-in user, or nil.
func (s *Store) Current() *appwrite.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a user is held.
func (s *Store) Authenticated() bool {
	return s.Current() != nil
}

// Set replaces the held user and notifies subscribers.
func (s *Store) Set(user *appwrite.User) {
	s.mu.Lock()
	s.user = user
	listeners := s.snapshotLocked()
	s.mu.Unlock()

	// Called without the lock so a listener may read the store.
	for _, fn := range listeners {
		fn(user)
	}
}

// Clear drops the held user and notifies subscribers.
func (s *Store) Clear() {
	s.Set(nil)
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) snapshotLocked() []Listener {
	out := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.listeners[id])
	}
	return out
}
