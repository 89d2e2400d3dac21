// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the TripGenie trip-planner
// service.
package api

// =============================================================================
// WIRE TYPES
// =============================================================================

// HistoryMessage is one prior turn sent with a chat request. Only role and
// content go over the wire; timestamps and ids stay client-side.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body for POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the identity block inside an auth response.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is the success body for login and signup.
type AuthResponse struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}

// ChatRequest is the body for POST /api/chat.
type ChatRequest struct {
	Message   string           `json:"message"`
	SessionID string           `json:"session_id"`
	History   []HistoryMessage `json:"history"`
}

// ChatResponse is the success body for POST /api/chat. Beyond the assistant
// text the service may attach a structured trip plan and the tools it used.
type ChatResponse struct {
	Success       bool           `json:"success"`
	Response      string         `json:"response"`
	SessionID     string         `json:"session_id"`
	TripPlan      map[string]any `json:"trip_plan,omitempty"`
	ToolCallsMade []string       `json:"tool_calls_made,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// HealthResponse is the body for GET /api/health.
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Version   string          `json:"version"`
	Features  map[string]bool `json:"features,omitempty"`
}

// SampleCategory is one group of suggested prompts for the landing screen.
type SampleCategory struct {
	Title   string   `json:"title"`
	Queries []string `json:"queries"`
}

// SampleQueriesResponse is the body for GET /api/sample-queries.
type SampleQueriesResponse struct {
	Categories map[string]SampleCategory `json:"categories"`
}

// errorResponse is the failure body carried on non-2xx statuses.
type errorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}
