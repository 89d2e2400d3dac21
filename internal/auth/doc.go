// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the client-side authentication state for tripgenie.
//
// Three ways in: login, signup, and a local guest mode that makes no
// network call and cannot fail. Registered identities persist to the
// durable store and survive restarts; guest identities live in the
// ephemeral store and die with the process. Logout clears identity, token,
// and every persisted session collection.
package auth
