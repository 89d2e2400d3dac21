// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, messages, and chat sessions.
package model

import (
	"strconv"
	"time"
)

// =============================================================================
// USER TYPE
// =============================================================================

// User is the identity of the person using the app, either registered
// (returned by the auth API) or a locally synthesized guest.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsGuest bool   `json:"is_guest"`
}

// NewGuestUser synthesizes a guest identity locally. Guest creation never
// touches the network and always succeeds.
func NewGuestUser() *User {
	return &User{
		ID:      "guest_" + strconv.FormatInt(time.Now().Unix(), 10),
		Email:   "guest@tripgenie.local",
		Name:    "Guest",
		IsGuest: true,
	}
}

// DisplayName returns the name to show in the header.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
