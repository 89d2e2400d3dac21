// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns conversation state and the send lifecycle for the
// active user.
//
// Mutations follow one rule: the full collection is persisted after each
// change. There is no partial write, versioning, or reconciliation; the last
// writer wins, which is acceptable for a single-process client.
package chat

import (
	"context"

	"github.com/morganforge/tripgenie-tui/internal/api"
	"github.com/morganforge/tripgenie-tui/internal/model"
	"github.com/morganforge/tripgenie-tui/internal/storage"
)

// Service is the slice of the API client the chat manager needs.
type Service interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// =============================================================================
// CHAT MANAGER
// =============================================================================

// Manager mediates all access to the active user's sessions. Construct one
// per authenticated user and pass it to consumers explicitly.
type Manager struct {
	service Service
	store   *storage.Store
	userID  string

	sessions []*model.ChatSession // most-recent-created-first
	current  *model.ChatSession
	pending  bool
}

// NewManager creates a chat manager for the given user and loads their
// persisted collection. The most recently created session, if any, becomes
// current.
func NewManager(service Service, store *storage.Store, userID string) (*Manager, error) {
	sessions, err := store.LoadSessions(userID)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		service:  service,
		store:    store,
		userID:   userID,
		sessions: sessions,
	}
	if len(sessions) > 0 {
		m.current = sessions[0]
	}
	return m, nil
}

// =============================================================================
// READS
// =============================================================================

// Sessions returns the session collection, most recent first.
func (m *Manager) Sessions() []*model.ChatSession {
	return m.sessions
}

// Current returns the selected session, or nil.
func (m *Manager) Current() *model.ChatSession {
	return m.current
}

// IsPending reports whether a response is outstanding. Display-only: sends
// are not serialized against each other.
func (m *Manager) IsPending() bool {
	return m.pending
}

// SearchSessions returns sessions whose title or any message content
// contains the query, case-insensitively. A blank or whitespace-only query
// returns the full collection. Pure read; no persistence side effect.
func (m *Manager) SearchSessions(query string) []*model.ChatSession {
	results := make([]*model.ChatSession, 0, len(m.sessions))
	for _, sess := range m.sessions {
		if sess.Matches(query) {
			results = append(results, sess)
		}
	}
	return results
}

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

// CreateNewSession builds an empty session, prepends it to the collection,
// makes it current, and persists. There is no cap on session count.
func (m *Manager) CreateNewSession() (*model.ChatSession, error) {
	sess := model.NewChatSession()
	prev := m.current
	m.sessions = append([]*model.ChatSession{sess}, m.sessions...)
	m.current = sess
	if err := m.persist(); err != nil {
		// The unpersisted session must not linger in the collection.
		m.sessions = m.sessions[1:]
		m.current = prev
		return nil, err
	}
	return sess, nil
}

// SelectSession makes the matching session current. Selecting an unknown id
// is a silent no-op.
func (m *Manager) SelectSession(id string) {
	if sess := m.findSession(id); sess != nil {
		m.current = sess
	}
}

// DeleteSession removes the matching session and persists. When the current
// session is deleted, selection falls back to the first remaining session
// or to none.
func (m *Manager) DeleteSession(id string) error {
	idx := -1
	for i, sess := range m.sessions {
		if sess.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	wasCurrent := m.current != nil && m.current.ID == id
	m.sessions = append(m.sessions[:idx], m.sessions[idx+1:]...)

	if wasCurrent {
		if len(m.sessions) > 0 {
			m.current = m.sessions[0]
		} else {
			m.current = nil
		}
	}
	return m.persist()
}

// ClearCurrentChat empties the current session's messages and resets its
// title to a placeholder. No-op when nothing is selected.
func (m *Manager) ClearCurrentChat() error {
	if m.current == nil {
		return nil
	}
	m.current.Clear()
	return m.persist()
}

// =============================================================================
// SENDING
// =============================================================================

// SendAttempt captures everything an in-flight send needs to settle later:
// which session it belongs to, the request to issue, and the pre-mutation
// snapshot for rollback. Tagging the attempt with its session id means a
// completion is applied to that session and never to whichever session
// happens to be current when the response lands.
type SendAttempt struct {
	SessionID string
	Request   api.ChatRequest

	snapshot *model.ChatSession
}

// BeginSend optimistically appends the user message to the current session,
// marks a response pending, persists, and returns the attempt to issue.
// With no session selected, one is created first and the same content is
// sent through it.
func (m *Manager) BeginSend(content string) (*SendAttempt, error) {
	if m.current == nil {
		if _, err := m.CreateNewSession(); err != nil {
			return nil, err
		}
	}
	sess := m.current

	// Snapshot before the optimistic mutation; rollback restores this.
	snapshot := sess.Clone()

	// History carries prior turns only, role and content, timestamps
	// stripped.
	history := make([]api.HistoryMessage, 0, len(sess.Messages))
	for _, msg := range sess.Messages {
		history = append(history, api.HistoryMessage{
			Role:    msg.Role.String(),
			Content: msg.Content,
		})
	}

	sess.AddMessage(model.NewUserMessage(content))
	m.pending = true

	if err := m.persist(); err != nil {
		// Undo the optimistic append: a message that was never dispatched
		// must not stay visible, and no attempt will settle the flag.
		m.pending = false
		for i := range m.sessions {
			if m.sessions[i].ID == sess.ID {
				m.sessions[i] = snapshot
				break
			}
		}
		if m.current != nil && m.current.ID == sess.ID {
			m.current = snapshot
		}
		return nil, err
	}

	return &SendAttempt{
		SessionID: sess.ID,
		Request: api.ChatRequest{
			Message:   content,
			SessionID: sess.ID,
			History:   history,
		},
		snapshot: snapshot,
	}, nil
}

// CompleteSend appends the assistant reply to the attempt's session and
// persists. A reply for a session that was deleted while in flight is
// discarded. The pending flag clears either way.
func (m *Manager) CompleteSend(attempt *SendAttempt, resp *api.ChatResponse) error {
	m.pending = false

	sess := m.findSession(attempt.SessionID)
	if sess == nil {
		return nil
	}

	sess.AddMessage(model.NewAssistantMessage(resp.Response))
	return m.persist()
}

// FailSend rolls the attempt's session back to its pre-send snapshot: the
// optimistically appended user message is discarded from the visible
// session. The pending flag clears.
func (m *Manager) FailSend(attempt *SendAttempt) error {
	m.pending = false

	for i, sess := range m.sessions {
		if sess.ID == attempt.SessionID {
			m.sessions[i] = attempt.snapshot
			if m.current != nil && m.current.ID == attempt.SessionID {
				m.current = attempt.snapshot
			}
			return m.persist()
		}
	}
	return nil
}

// SendMessage is the synchronous form of the begin/complete/fail cycle,
// used where the caller is not driving an event loop.
func (m *Manager) SendMessage(ctx context.Context, content string) error {
	attempt, err := m.BeginSend(content)
	if err != nil {
		return err
	}

	resp, err := m.service.Chat(ctx, attempt.Request)
	if err != nil {
		if rbErr := m.FailSend(attempt); rbErr != nil {
			return rbErr
		}
		return err
	}
	return m.CompleteSend(attempt, resp)
}

// =============================================================================
// HELPERS
// =============================================================================

// findSession returns the session with the given id, or nil.
func (m *Manager) findSession(id string) *model.ChatSession {
	for _, sess := range m.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

// persist writes the full collection for this user.
func (m *Manager) persist() error {
	return m.store.SaveSessions(m.userID, m.sessions)
}
