// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, messages, and chat sessions.
package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// CHAT SESSION TYPE
// =============================================================================

// ChatSession holds one conversation with its message history and metadata.
type ChatSession struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Messages  []*Message `json:"messages"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewChatSession creates a new empty session with a placeholder title.
func NewChatSession() *ChatSession {
	now := time.Now()
	return &ChatSession{
		ID:        "sess_" + uuid.NewString(),
		Title:     placeholderTitle(now),
		Messages:  make([]*Message, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddMessage appends a message and bumps the updated timestamp.
// The first user message also derives the session title.
func (s *ChatSession) AddMessage(msg *Message) {
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = time.Now()
	if msg.Role == RoleUser && s.userMessageCount() == 1 {
		s.Title = TitleFromMessage(msg.Content)
	}
}

// Clear empties the message history and resets the title to a placeholder.
func (s *ChatSession) Clear() {
	s.Messages = make([]*Message, 0)
	s.Title = placeholderTitle(time.Now())
	s.UpdatedAt = time.Now()
}

// LastMessage returns the most recent message, or nil if empty.
func (s *ChatSession) LastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return s.Messages[len(s.Messages)-1]
}

// MessageCount returns the number of messages.
func (s *ChatSession) MessageCount() int {
	return len(s.Messages)
}

// IsEmpty returns true if there are no messages.
func (s *ChatSession) IsEmpty() bool {
	return len(s.Messages) == 0
}

// Matches reports whether the query occurs in the title or any message
// content, case-insensitively. An empty query matches everything.
func (s *ChatSession) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(s.Title), query) {
		return true
	}
	for _, msg := range s.Messages {
		if strings.Contains(strings.ToLower(msg.Content), query) {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the session. Used to snapshot state before
// an optimistic mutation so a failed send can be rolled back.
func (s *ChatSession) Clone() *ChatSession {
	clone := &ChatSession{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Messages:  make([]*Message, len(s.Messages)),
	}
	for i, msg := range s.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}
	return clone
}

// Preview returns a short preview of the session for the sidebar.
func (s *ChatSession) Preview() string {
	for _, msg := range s.Messages {
		if msg.Role == RoleUser && msg.Content != "" {
			return msg.Preview(80)
		}
	}
	return "Empty conversation"
}

// userMessageCount returns how many user messages the session holds.
func (s *ChatSession) userMessageCount() int {
	count := 0
	for _, msg := range s.Messages {
		if msg.Role == RoleUser {
			count++
		}
	}
	return count
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// ExportMarkdown exports the session as a Markdown formatted string.
func (s *ChatSession) ExportMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# " + s.Title + "\n\n")
	sb.WriteString("Created: " + s.CreatedAt.Format(time.RFC3339) + "\n\n")
	sb.WriteString("---\n\n")

	for _, msg := range s.Messages {
		role := "**User**"
		if msg.Role == RoleAssistant {
			role = "**TripGenie**"
		}
		sb.WriteString(role + " (" + msg.Timestamp.Format("15:04") + "):\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n---\n\n")
	}

	return sb.String()
}

// ExportJSON exports the session as a pretty-printed JSON byte array.
func (s *ChatSession) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// =============================================================================
// TITLE GENERATION
// =============================================================================

// titleStopwords are generic travel-request words that make poor titles.
var titleStopwords = map[string]bool{
	"trip":   true,
	"plan":   true,
	"travel": true,
	"visit":  true,
	"going":  true,
	"want":   true,
	"like":   true,
	"help":   true,
}

var titleCaser = cases.Title(language.English)

// TitleFromMessage derives a session title from the first user message.
// The first token longer than three characters that is not a stopword is
// treated as the likely destination. This is a heuristic, not a guarantee
// of a meaningful destination name.
func TitleFromMessage(content string) string {
	for _, word := range strings.Fields(content) {
		trimmed := strings.Trim(word, ".,!?;:\"'")
		if len(trimmed) <= 3 {
			continue
		}
		if titleStopwords[strings.ToLower(trimmed)] {
			continue
		}
		return "Trip to " + titleCaser.String(strings.ToLower(trimmed))
	}
	return placeholderTitle(time.Now())
}

// placeholderTitle is the dated fallback title for sessions without a
// usable destination word.
func placeholderTitle(t time.Time) string {
	return "Trip Plan - " + t.Format("Jan 2, 2006")
}
