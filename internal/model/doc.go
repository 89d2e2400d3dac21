// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, messages, and chat sessions.
//
// This package defines the core domain types used throughout the application
// for representing the active user, chat sessions, and their messages.
//
// # Key Types
//
//   - User: The active identity, registered or guest
//   - ChatSession: Container for one conversation with messages and metadata
//   - Message: Single message with role, content, and timestamp
//   - Role: Message role enumeration (user, assistant)
//
// # Usage
//
// Create a session and add a message:
//
//	sess := model.NewChatSession()
//	sess.AddMessage(model.NewUserMessage("Plan a weekend in Lisbon"))
//
// The first user message derives the session title:
//
//	fmt.Println(sess.Title) // "Trip to Lisbon"
package model
