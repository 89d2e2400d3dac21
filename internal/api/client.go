// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the TripGenie trip-planner
// service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Configuration constants.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP transport for all trip-planner requests.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// Error variables for common API failures.
var (
	// ErrAuthFailed indicates login or signup was rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRequestFailed indicates a non-2xx response without a usable message.
	ErrRequestFailed = errors.New("request failed")

	// ErrUnavailable indicates the service could not be reached at all.
	ErrUnavailable = errors.New("trip planner service unavailable")
)

// APIError represents a non-2xx response carrying a server-supplied message.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("trip planner API error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("trip planner API error (HTTP %d)", e.Status)
}

// UserMessage returns the text to surface in a notification: the server's
// message when it sent one, a generic fallback otherwise.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a client for the trip-planner HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   DefaultTimeout,
		},
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// SetToken sets the bearer token attached to authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken drops the bearer token.
func (c *Client) ClearToken() {
	c.token = ""
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "/api/auth/login", LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "/api/auth/signup", SignupRequest{Name: name, Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// CHAT ENDPOINT
// =============================================================================

// Chat sends a message with the session id and prior history and returns
// the assistant completion.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.post(ctx, "/api/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// SERVICE ENDPOINTS
// =============================================================================

// Health checks service availability.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SampleQueries fetches the suggested prompts shown on the landing screen.
func (c *Client) SampleQueries(ctx context.Context) (*SampleQueriesResponse, error) {
	var out SampleQueriesResponse
	if err := c.get(ctx, "/api/sample-queries", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// REQUEST EXECUTION
// =============================================================================

// post executes a JSON POST and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// get executes a GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// do sets headers, executes the request once (no retry), and decodes the
// body. Non-2xx statuses become an *APIError with the server's message.
func (c *Client) do(req *http.Request, out any) error {
	c.setHeaders(req)
	c.logRequest(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	// SECURITY: cap the body read regardless of Content-Length
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: malformed response body", ErrRequestFailed)
	}
	return nil
}

// decodeError extracts the server-supplied message from a failure body.
func (c *Client) decodeError(status int, body []byte) error {
	var errBody errorResponse
	message := ""
	if err := json.Unmarshal(body, &errBody); err == nil {
		message = errBody.Message
		if message == "" {
			message = errBody.Detail
		}
	}
	return &APIError{Status: status, Message: message}
}

// setHeaders sets the required headers for trip-planner API requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "tripgenie-tui/0.1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// logRequest logs an API request without exposing sensitive data.
// Secure logging: never log headers (auth token) or body (credentials).
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs an API response with duration, never the body.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}
