// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the TripGenie trip-planner
// service.
//
// The client covers the full remote surface: login, signup, chat, health,
// and sample queries. Every call takes a context, issues exactly one
// attempt (no retries; a chat request is not idempotent from the user's
// point of view), and returns either a decoded response or an error that
// preserves the server's own message when one was provided.
//
// # Errors
//
// Non-2xx responses become *APIError carrying the status code and the
// server's message/detail field. Transport failures wrap ErrUnavailable.
// Use errors.As / errors.Is to discriminate.
package api
