// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides persisted client state for tripgenie TUI.
package storage

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/morganforge/tripgenie-tui/internal/model"
)

// Storage keys. Session collections are namespaced per user id so switching
// accounts never mixes histories.
const (
	keyUser      = "trip_planner_user"
	keyToken     = "trip_planner_token"
	sessionsPref = "trip_planner_sessions_"
)

// =============================================================================
// STORE
// =============================================================================

// Store exposes the typed records the app persists: identity, auth token,
// and per-user session collections. The backend decides durability.
type Store struct {
	backend Backend
}

// NewStore creates a store over the given backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// =============================================================================
// IDENTITY
// =============================================================================

// SaveUser persists the user identity.
func (s *Store) SaveUser(user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.backend.Write(keyUser, data)
}

// LoadUser returns the persisted user identity, or nil if absent.
// A corrupt record is discarded and treated as absent: the worst case for
// bad persisted state is a reset to logged out, never a crash.
func (s *Store) LoadUser() (*model.User, error) {
	data, err := s.backend.Read(keyUser)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.backend.Delete(keyUser)
		return nil, nil
	}
	return &user, nil
}

// DeleteUser removes the persisted identity.
func (s *Store) DeleteUser() error {
	return s.backend.Delete(keyUser)
}

// SaveToken persists the API auth token.
func (s *Store) SaveToken(token string) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return s.backend.Write(keyToken, data)
}

// LoadToken returns the persisted token, or empty string if absent.
func (s *Store) LoadToken() (string, error) {
	data, err := s.backend.Read(keyToken)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		s.backend.Delete(keyToken)
		return "", nil
	}
	return token, nil
}

// DeleteToken removes the persisted token.
func (s *Store) DeleteToken() error {
	return s.backend.Delete(keyToken)
}

// =============================================================================
// SESSION COLLECTIONS
// =============================================================================

// SaveSessions persists a user's full session collection as one document.
// Writes are whole-collection by design: there are no partial updates to
// reconcile on load.
func (s *Store) SaveSessions(userID string, sessions []*model.ChatSession) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	return s.backend.Write(sessionsPref+userID, data)
}

// LoadSessions returns a user's session collection. An absent or corrupt
// record yields an empty collection.
func (s *Store) LoadSessions(userID string) ([]*model.ChatSession, error) {
	data, err := s.backend.Read(sessionsPref + userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []*model.ChatSession{}, nil
		}
		return nil, err
	}

	var sessions []*model.ChatSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		s.backend.Delete(sessionsPref + userID)
		return []*model.ChatSession{}, nil
	}
	if sessions == nil {
		sessions = []*model.ChatSession{}
	}
	return sessions, nil
}

// DropNamespace removes one user's session collection.
func (s *Store) DropNamespace(userID string) error {
	return s.backend.Delete(sessionsPref + userID)
}

// DropAllNamespaces removes every user's session collection. Used by the
// logout sweep.
func (s *Store) DropAllNamespaces() error {
	keys, err := s.backend.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if strings.HasPrefix(key, sessionsPref) {
			if err := s.backend.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}
