// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides persisted client state for tripgenie TUI.
package storage

import (
	"errors"
	"testing"

	"github.com/morganforge/tripgenie-tui/internal/model"
)

// =============================================================================
// FILE BACKEND TESTS
// =============================================================================

func TestFileBackend_RoundTrip(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}

	if err := backend.Write("alpha", []byte(`{"x":1}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := backend.Read("alpha")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != `{"x":1}` {
		t.Errorf("Read = %q", data)
	}

	keys, err := backend.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "alpha" {
		t.Errorf("Keys = %v", keys)
	}

	if err := backend.Delete("alpha"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := backend.Read("alpha"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read after delete = %v, want ErrNotFound", err)
	}
}

func TestFileBackend_DeleteAbsentKeyIsNotAnError(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	if err := backend.Delete("never-written"); err != nil {
		t.Errorf("Delete absent key = %v", err)
	}
}

// =============================================================================
// MEMORY BACKEND TESTS
// =============================================================================

func TestMemoryBackend_ReadReturnsCopy(t *testing.T) {
	backend := NewMemoryBackend()
	if err := backend.Write("k", []byte("abc")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := backend.Read("k")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	data[0] = 'X'

	again, _ := backend.Read("k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

// =============================================================================
// IDENTITY RECORD TESTS
// =============================================================================

func TestStore_UserRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryBackend())

	user := &model.User{ID: "user_1", Email: "a@b.test", Name: "Ada"}
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	loaded, err := store.LoadUser()
	if err != nil {
		t.Fatalf("LoadUser: %v", err)
	}
	if loaded == nil || loaded.ID != "user_1" || loaded.Email != "a@b.test" {
		t.Errorf("LoadUser = %+v", loaded)
	}
}

func TestStore_LoadUser_AbsentReturnsNil(t *testing.T) {
	store := NewStore(NewMemoryBackend())
	user, err := store.LoadUser()
	if err != nil {
		t.Fatalf("LoadUser: %v", err)
	}
	if user != nil {
		t.Errorf("LoadUser on empty store = %+v, want nil", user)
	}
}

func TestStore_LoadUser_CorruptRecordResetsToLoggedOut(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Write("trip_planner_user", []byte("{not json"))

	store := NewStore(backend)
	user, err := store.LoadUser()
	if err != nil {
		t.Fatalf("LoadUser: %v", err)
	}
	if user != nil {
		t.Errorf("corrupt record should read as logged out, got %+v", user)
	}

	// The corrupt record is gone, not left to fail again.
	if _, err := backend.Read("trip_planner_user"); !errors.Is(err, ErrNotFound) {
		t.Error("corrupt record should have been discarded")
	}
}

func TestStore_TokenRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryBackend())
	if err := store.SaveToken("tok-123"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	token, err := store.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("LoadToken = %q", token)
	}
}

// =============================================================================
// SESSION COLLECTION TESTS
// =============================================================================

func TestStore_SessionsRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryBackend())

	sess := model.NewChatSession()
	sess.AddMessage(model.NewUserMessage("Visit Kyoto"))
	if err := store.SaveSessions("user_1", []*model.ChatSession{sess}); err != nil {
		t.Fatalf("SaveSessions: %v", err)
	}

	loaded, err := store.LoadSessions("user_1")
	if err != nil {
		t.Fatalf("LoadSessions: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("len = %d, want 1", len(loaded))
	}
	if loaded[0].ID != sess.ID || loaded[0].Title != sess.Title {
		t.Errorf("loaded = %+v", loaded[0])
	}
	if loaded[0].MessageCount() != 1 {
		t.Errorf("message count = %d", loaded[0].MessageCount())
	}
	if !loaded[0].CreatedAt.Equal(sess.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", loaded[0].CreatedAt, sess.CreatedAt)
	}
	if !loaded[0].UpdatedAt.Equal(sess.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", loaded[0].UpdatedAt, sess.UpdatedAt)
	}
	if !loaded[0].Messages[0].Timestamp.Equal(sess.Messages[0].Timestamp) {
		t.Errorf("message Timestamp = %v, want %v",
			loaded[0].Messages[0].Timestamp, sess.Messages[0].Timestamp)
	}
}

func TestStore_LoadSessions_AbsentAndCorruptYieldEmpty(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewStore(backend)

	loaded, err := store.LoadSessions("nobody")
	if err != nil || len(loaded) != 0 {
		t.Errorf("absent: sessions=%v err=%v", loaded, err)
	}

	backend.Write("trip_planner_sessions_user_1", []byte("]["))
	loaded, err = store.LoadSessions("user_1")
	if err != nil || len(loaded) != 0 {
		t.Errorf("corrupt: sessions=%v err=%v", loaded, err)
	}
}

func TestStore_SessionsAreNamespacedPerUser(t *testing.T) {
	store := NewStore(NewMemoryBackend())

	a := model.NewChatSession()
	b := model.NewChatSession()
	store.SaveSessions("user_a", []*model.ChatSession{a})
	store.SaveSessions("user_b", []*model.ChatSession{b})

	loaded, _ := store.LoadSessions("user_a")
	if len(loaded) != 1 || loaded[0].ID != a.ID {
		t.Errorf("user_a sessions = %v", loaded)
	}
}

func TestStore_DropAllNamespaces(t *testing.T) {
	store := NewStore(NewMemoryBackend())

	store.SaveSessions("user_a", []*model.ChatSession{model.NewChatSession()})
	store.SaveSessions("user_b", []*model.ChatSession{model.NewChatSession()})
	store.SaveUser(&model.User{ID: "user_a", Email: "a@b.test", Name: "Ada"})

	if err := store.DropAllNamespaces(); err != nil {
		t.Fatalf("DropAllNamespaces: %v", err)
	}

	for _, id := range []string{"user_a", "user_b"} {
		loaded, _ := store.LoadSessions(id)
		if len(loaded) != 0 {
			t.Errorf("sessions for %s survived the sweep", id)
		}
	}

	// The sweep only covers session namespaces.
	user, _ := store.LoadUser()
	if user == nil {
		t.Error("identity record should not be touched by the namespace sweep")
	}
}
