// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns conversation state and the send lifecycle for the
// active user.
package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/morganforge/tripgenie-tui/internal/api"
	"github.com/morganforge/tripgenie-tui/internal/storage"
)

// fakeService returns a canned response or error.
type fakeService struct {
	resp *api.ChatResponse
	err  error

	lastReq api.ChatRequest
}

func (f *fakeService) Chat(_ context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newTestManager(t *testing.T, svc Service) *Manager {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryBackend())
	mgr, err := NewManager(svc, store, "user_test")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr
}

// =============================================================================
// SESSION LIFECYCLE TESTS
// =============================================================================

func TestCreateNewSession_PrependsAndSelects(t *testing.T) {
	mgr := newTestManager(t, &fakeService{})

	first, err := mgr.CreateNewSession()
	if err != nil {
		t.Fatalf("CreateNewSession: %v", err)
	}
	second, err := mgr.CreateNewSession()
	if err != nil {
		t.Fatalf("CreateNewSession: %v", err)
	}

	sessions := mgr.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("len(Sessions) = %d, want 2", len(sessions))
	}
	if sessions[0].ID != second.ID {
		t.Error("newest session should be first")
	}
	if sessions[1].ID != first.ID {
		t.Error("older session should follow")
	}
	if mgr.Current() == nil || mgr.Current().ID != second.ID {
		t.Error("new session should become current")
	}
}

func TestNewManager_SelectsMostRecentSession(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend())

	seed, err := NewManager(&fakeService{}, store, "user_test")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	seed.CreateNewSession()
	newest, _ := seed.CreateNewSession()

	reloaded, err := NewManager(&fakeService{}, store, "user_test")
	if err != nil {
		t.Fatalf("NewManager reload: %v", err)
	}
	if reloaded.Current() == nil || reloaded.Current().ID != newest.ID {
		t.Error("reload should select the most recent session")
	}
}

func TestDeleteSession_CurrentFallsBack(t *testing.T) {
	mgr := newTestManager(t, &fakeService{})
	older, _ := mgr.CreateNewSession()
	newer, _ := mgr.CreateNewSession()

	if err := mgr.DeleteSession(newer.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if mgr.Current() == nil || mgr.Current().ID != older.ID {
		t.Error("deleting current should fall back to first remaining")
	}

	if err := mgr.DeleteSession(older.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if mgr.Current() != nil {
		t.Error("deleting last session should leave no current")
	}
}

func TestDeleteSession_NonCurrentKeepsSelection(t *testing.T) {
	mgr := newTestManager(t, &fakeService{})
	older, _ := mgr.CreateNewSession()
	newer, _ := mgr.CreateNewSession()

	if err := mgr.DeleteSession(older.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if mgr.Current() == nil || mgr.Current().ID != newer.ID {
		t.Error("deleting a non-current session must not move selection")
	}
}

func TestSelectSession_UnknownIDIsNoop(t *testing.T) {
	mgr := newTestManager(t, &fakeService{})
	sess, _ := mgr.CreateNewSession()

	mgr.SelectSession("sess_does_not_exist")
	if mgr.Current() == nil || mgr.Current().ID != sess.ID {
		t.Error("selecting an unknown id should not change selection")
	}
}

// =============================================================================
// SEARCH TESTS
// =============================================================================

func TestSearchSessions(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Success: true, Response: "ok"}}
	mgr := newTestManager(t, svc)

	mgr.CreateNewSession()
	if err := mgr.SendMessage(context.Background(), "Visit Kyoto in spring"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	mgr.CreateNewSession()
	if err := mgr.SendMessage(context.Background(), "Hotels in Paris"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if got := len(mgr.SearchSessions("")); got != 2 {
		t.Errorf("blank query returned %d sessions, want 2", got)
	}
	if got := len(mgr.SearchSessions("   ")); got != 2 {
		t.Errorf("whitespace query returned %d sessions, want 2", got)
	}
	if got := len(mgr.SearchSessions("kyoto")); got != 1 {
		t.Errorf("kyoto query returned %d sessions, want 1", got)
	}
	if got := len(mgr.SearchSessions("reykjavik")); got != 0 {
		t.Errorf("miss query returned %d sessions, want 0", got)
	}
}

// =============================================================================
// SEND LIFECYCLE TESTS
// =============================================================================

func TestBeginSend_WithNoSessionCreatesAndSends(t *testing.T) {
	mgr := newTestManager(t, &fakeService{})

	attempt, err := mgr.BeginSend("Plan me a week in Rome")
	if err != nil {
		t.Fatalf("BeginSend: %v", err)
	}

	if mgr.Current() == nil {
		t.Fatal("BeginSend should have created a session")
	}
	if attempt.SessionID != mgr.Current().ID {
		t.Error("attempt should be tagged with the created session")
	}
	if attempt.Request.Message != "Plan me a week in Rome" {
		t.Errorf("request message = %q, the typed content must be sent", attempt.Request.Message)
	}
	if got := mgr.Current().MessageCount(); got != 1 {
		t.Errorf("message count = %d, want optimistic user message", got)
	}
	if !mgr.IsPending() {
		t.Error("pending should be set after BeginSend")
	}
}

func TestBeginSend_HistoryExcludesNewMessage(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Success: true, Response: "reply"}}
	mgr := newTestManager(t, svc)

	if err := mgr.SendMessage(context.Background(), "first question"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	attempt, err := mgr.BeginSend("second question")
	if err != nil {
		t.Fatalf("BeginSend: %v", err)
	}

	// Prior turns only: first user message plus the assistant reply.
	if len(attempt.Request.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(attempt.Request.History))
	}
	if attempt.Request.History[0].Content != "first question" {
		t.Errorf("history[0] = %q", attempt.Request.History[0].Content)
	}
	if attempt.Request.History[1].Role != "assistant" {
		t.Errorf("history[1] role = %q", attempt.Request.History[1].Role)
	}
}

func TestCompleteSend_AppendsReply(t *testing.T) {
	mgr := newTestManager(t, &fakeService{})

	attempt, err := mgr.BeginSend("Where should I eat in Tokyo?")
	if err != nil {
		t.Fatalf("BeginSend: %v", err)
	}

	resp := &api.ChatResponse{Success: true, Response: "Try the fish market."}
	if err := mgr.CompleteSend(attempt, resp); err != nil {
		t.Fatalf("CompleteSend: %v", err)
	}

	if mgr.IsPending() {
		t.Error("pending should clear on completion")
	}
	sess := mgr.Current()
	if got := sess.MessageCount(); got != 2 {
		t.Fatalf("message count = %d, want 2", got)
	}
	if sess.LastMessage().Content != "Try the fish market." {
		t.Errorf("last message = %q", sess.LastMessage().Content)
	}
}

func TestFailSend_RevertsOptimisticMessage(t *testing.T) {
	mgr := newTestManager(t, &fakeService{})
	sess, _ := mgr.CreateNewSession()
	titleBefore := sess.Title

	attempt, err := mgr.BeginSend("Visit Kyoto")
	if err != nil {
		t.Fatalf("BeginSend: %v", err)
	}

	if err := mgr.FailSend(attempt); err != nil {
		t.Fatalf("FailSend: %v", err)
	}

	if mgr.IsPending() {
		t.Error("pending should clear on failure")
	}
	if got := mgr.Current().MessageCount(); got != 0 {
		t.Errorf("message count after revert = %d, want 0", got)
	}
	if mgr.Current().Title != titleBefore {
		t.Errorf("title after revert = %q, want %q", mgr.Current().Title, titleBefore)
	}
	if mgr.Current().ID != sess.ID {
		t.Error("revert must keep the same session id")
	}
}

func TestCompleteSend_DiscardsReplyForDeletedSession(t *testing.T) {
	mgr := newTestManager(t, &fakeService{})

	attempt, err := mgr.BeginSend("Plan a trip to Oslo")
	if err != nil {
		t.Fatalf("BeginSend: %v", err)
	}
	if err := mgr.DeleteSession(attempt.SessionID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}

	resp := &api.ChatResponse{Success: true, Response: "late reply"}
	if err := mgr.CompleteSend(attempt, resp); err != nil {
		t.Fatalf("CompleteSend: %v", err)
	}

	if mgr.IsPending() {
		t.Error("pending should clear even when the reply is discarded")
	}
	if len(mgr.Sessions()) != 0 {
		t.Error("discarded reply must not resurrect the deleted session")
	}
}

func TestCompleteSend_AppliesToTaggedSessionNotCurrent(t *testing.T) {
	mgr := newTestManager(t, &fakeService{})

	attempt, err := mgr.BeginSend("Plan a trip to Oslo")
	if err != nil {
		t.Fatalf("BeginSend: %v", err)
	}

	// Switch away while the response is in flight.
	other, _ := mgr.CreateNewSession()

	resp := &api.ChatResponse{Success: true, Response: "Oslo plan"}
	if err := mgr.CompleteSend(attempt, resp); err != nil {
		t.Fatalf("CompleteSend: %v", err)
	}

	if other.MessageCount() != 0 {
		t.Error("reply leaked into the session that happened to be current")
	}
	original := mgr.SearchSessions("oslo plan")
	if len(original) != 1 {
		t.Fatalf("reply not applied to originating session")
	}
}

func TestSendMessage_ErrorRollsBack(t *testing.T) {
	svc := &fakeService{err: errors.New("boom")}
	mgr := newTestManager(t, svc)
	mgr.CreateNewSession()

	err := mgr.SendMessage(context.Background(), "Visit Kyoto")
	if err == nil {
		t.Fatal("SendMessage should surface the service error")
	}
	if got := mgr.Current().MessageCount(); got != 0 {
		t.Errorf("message count after failed send = %d, want 0", got)
	}
}

// failWriteBackend wraps a memory backend and fails writes on demand.
type failWriteBackend struct {
	*storage.MemoryBackend
	failWrites bool
}

func (b *failWriteBackend) Write(key string, data []byte) error {
	if b.failWrites {
		return errors.New("disk full")
	}
	return b.MemoryBackend.Write(key, data)
}

func TestBeginSend_PersistFailureRollsBack(t *testing.T) {
	backend := &failWriteBackend{MemoryBackend: storage.NewMemoryBackend()}
	store := storage.NewStore(backend)
	mgr, err := NewManager(&fakeService{}, store, "user_test")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, err := mgr.CreateNewSession(); err != nil {
		t.Fatalf("CreateNewSession: %v", err)
	}

	backend.failWrites = true
	if _, err := mgr.BeginSend("Visit Kyoto"); err == nil {
		t.Fatal("BeginSend should surface the persist error")
	}
	if mgr.IsPending() {
		t.Error("pending must clear when the send never dispatched")
	}
	if got := mgr.Current().MessageCount(); got != 0 {
		t.Errorf("message count after failed persist = %d, want 0", got)
	}
}

func TestCreateNewSession_PersistFailureRollsBack(t *testing.T) {
	backend := &failWriteBackend{MemoryBackend: storage.NewMemoryBackend(), failWrites: true}
	store := storage.NewStore(backend)
	mgr, err := NewManager(&fakeService{}, store, "user_test")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := mgr.CreateNewSession(); err == nil {
		t.Fatal("CreateNewSession should surface the persist error")
	}
	if len(mgr.Sessions()) != 0 {
		t.Errorf("unpersisted session left in collection: %d", len(mgr.Sessions()))
	}
	if mgr.Current() != nil {
		t.Error("unpersisted session left selected")
	}
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestSendSurvivesReload(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend())
	svc := &fakeService{resp: &api.ChatResponse{Success: true, Response: "reply"}}

	mgr, err := NewManager(svc, store, "user_test")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := mgr.SendMessage(context.Background(), "Visit Kyoto"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	reloaded, err := NewManager(svc, store, "user_test")
	if err != nil {
		t.Fatalf("NewManager reload: %v", err)
	}
	if len(reloaded.Sessions()) != 1 {
		t.Fatalf("len(Sessions) after reload = %d", len(reloaded.Sessions()))
	}
	if got := reloaded.Current().MessageCount(); got != 2 {
		t.Errorf("message count after reload = %d, want 2", got)
	}
}
