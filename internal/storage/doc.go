// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides persisted client state for tripgenie TUI.
//
// State is a small set of keyed JSON records: the registered user, their
// API token, and one session collection per user id. The Backend interface
// abstracts where records live; FileBackend persists under the data
// directory and survives restarts, MemoryBackend lives only as long as the
// process and holds guest state.
//
// Corrupt records are recovered locally: an unreadable user record resets
// to logged out, an unreadable session collection resets to empty. Nothing
// here talks to the network.
package storage
