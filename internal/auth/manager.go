// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the client-side authentication state for tripgenie.
//
// The manager is constructed once and passed to consumers explicitly. There
// is no ambient global lookup; wiring is a compile-time concern.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/morganforge/tripgenie-tui/internal/api"
	"github.com/morganforge/tripgenie-tui/internal/model"
	"github.com/morganforge/tripgenie-tui/internal/storage"
)

// Service is the slice of the API client the auth manager needs.
type Service interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Signup(ctx context.Context, name, email, password string) (*api.AuthResponse, error)
}

// ErrNotAuthenticated indicates an operation requiring a user was called
// while logged out.
var ErrNotAuthenticated = errors.New("not authenticated")

// =============================================================================
// AUTH MANAGER
// =============================================================================

// Manager owns the active identity and its persistence. Registered users
// go to the durable store and survive restarts; guest identities go to the
// ephemeral store and live only as long as the process.
type Manager struct {
	service Service
	durable *storage.Store
	guest   *storage.Store

	user  *model.User
	token string
}

// NewManager creates an auth manager and restores any persisted identity.
//
// Restore precedence is guest store first, then the durable store: an
// active guest session outranks a stale registered-user record. This
// ordering is deliberate and load-bearing for behavioral parity with the
// original client.
func NewManager(service Service, durable, guest *storage.Store) (*Manager, error) {
	m := &Manager{
		service: service,
		durable: durable,
		guest:   guest,
	}

	if user, err := guest.LoadUser(); err == nil && user != nil {
		m.user = user
		return m, nil
	}

	user, err := durable.LoadUser()
	if err != nil {
		return nil, fmt.Errorf("failed to restore identity: %w", err)
	}
	if user != nil {
		token, err := durable.LoadToken()
		if err != nil {
			return nil, fmt.Errorf("failed to restore token: %w", err)
		}
		m.user = user
		m.token = token
	}

	return m, nil
}

// =============================================================================
// STATE
// =============================================================================

// CurrentUser returns the active user, or nil when logged out.
func (m *Manager) CurrentUser() *model.User {
	return m.user
}

// Token returns the API token for the active registered user. Guests have
// no token.
func (m *Manager) Token() string {
	return m.token
}

// IsAuthenticated reports whether any identity (registered or guest) is
// active.
func (m *Manager) IsAuthenticated() bool {
	return m.user != nil
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Login authenticates against the remote API. On success the returned
// identity replaces the current one and is persisted along with the token;
// any guest identity is cleared. On failure state is left untouched and the
// error carries the server's message when one was provided.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.service.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.adopt(resp)
}

// Signup registers a new account. Same contract as Login against the
// registration endpoint.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	resp, err := m.service.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}
	return m.adopt(resp)
}

// LoginAsGuest synthesizes a local guest identity. No network call is made
// and the operation always succeeds. Any registered-user persistence is
// cleared so a later restart does not resurrect the old account.
func (m *Manager) LoginAsGuest() *model.User {
	user := model.NewGuestUser()

	m.guest.SaveUser(user)
	m.durable.DeleteUser()
	m.durable.DeleteToken()

	m.user = user
	m.token = ""
	return user
}

// Logout clears all persisted identity and token data and sweeps every
// persisted session collection. Irreversible; confirmation, if any, is a
// UI concern.
func (m *Manager) Logout() error {
	m.user = nil
	m.token = ""

	if err := m.guest.DeleteUser(); err != nil {
		return err
	}
	if err := m.durable.DeleteUser(); err != nil {
		return err
	}
	if err := m.durable.DeleteToken(); err != nil {
		return err
	}
	if err := m.guest.DropAllNamespaces(); err != nil {
		return err
	}
	return m.durable.DropAllNamespaces()
}

// adopt installs a server-returned identity and persists it.
func (m *Manager) adopt(resp *api.AuthResponse) error {
	user := &model.User{
		ID:      resp.User.ID,
		Email:   resp.User.Email,
		Name:    resp.User.Name,
		IsGuest: false,
	}

	if err := m.durable.SaveUser(user); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}
	if err := m.durable.SaveToken(resp.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	m.guest.DeleteUser()

	m.user = user
	m.token = resp.Token
	return nil
}
