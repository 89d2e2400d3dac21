// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the screens of the tripgenie TUI.
package app

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/tripgenie-tui/internal/api"
	"github.com/morganforge/tripgenie-tui/internal/auth"
	"github.com/morganforge/tripgenie-tui/internal/chat"
)

// =============================================================================
// ASYNC MESSAGES
// =============================================================================

// authResultMsg carries the outcome of a login or signup attempt.
type authResultMsg struct {
	err error
}

// sendResultMsg carries the outcome of a chat send. The attempt identifies
// which session the response belongs to; the chat manager applies it by id,
// so a response landing after a session switch never touches the wrong
// session.
type sendResultMsg struct {
	attempt *chat.SendAttempt
	resp    *api.ChatResponse
	err     error
}

// sampleQueriesMsg carries landing-screen suggestions from the service.
// Errors are ignored: the built-in list is a fine fallback.
type sampleQueriesMsg struct {
	queries []string
}

// healthResultMsg carries the startup availability probe result.
type healthResultMsg struct {
	err error
}

// =============================================================================
// COMMANDS
// =============================================================================

// loginCmd runs the auth operation off the UI goroutine. The auth manager
// is not touched by the UI again until the result message arrives.
func loginCmd(mgr *auth.Manager, signup bool, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		var err error
		if signup {
			err = mgr.Signup(ctx, name, email, password)
		} else {
			err = mgr.Login(ctx, email, password)
		}
		return authResultMsg{err: err}
	}
}

// sendCmd issues the chat request for an already-begun attempt. There is no
// cancellation: a session switch while in flight lets the response land and
// settle against its own session.
func sendCmd(service chat.Service, attempt *chat.SendAttempt, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := service.Chat(ctx, attempt.Request)
		return sendResultMsg{attempt: attempt, resp: resp, err: err}
	}
}

// checkHealthCmd probes the service once at startup so an unreachable
// backend is surfaced before the first send fails.
func checkHealthCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := client.Health(ctx)
		return healthResultMsg{err: err}
	}
}

// fetchSampleQueriesCmd loads landing-screen suggestions, best effort.
func fetchSampleQueriesCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		resp, err := client.SampleQueries(ctx)
		if err != nil {
			return sampleQueriesMsg{}
		}

		// Stable ordering for display; map iteration order is random.
		names := make([]string, 0, len(resp.Categories))
		for name := range resp.Categories {
			names = append(names, name)
		}
		sort.Strings(names)

		var queries []string
		for _, name := range names {
			cat := resp.Categories[name]
			if len(cat.Queries) > 0 {
				queries = append(queries, cat.Queries[0])
			}
		}
		return sampleQueriesMsg{queries: queries}
	}
}
