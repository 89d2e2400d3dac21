// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for tripgenie TUI.
//
// This file implements non-blocking toasts. Unlike modal error dialogs,
// toasts appear at the bottom of the screen and auto-dismiss, letting the
// user keep interacting while the notification is displayed.
package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/tripgenie-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastKindInfo is an informational toast
	ToastKindInfo ToastKind = iota
	// ToastKindError is an error toast
	ToastKindError
	// ToastKindSuccess is a success toast
	ToastKindSuccess
)

// DefaultToastDuration is the auto-dismiss duration for info/success toasts.
const DefaultToastDuration = 4 * time.Second

// ErrorToastDuration is the auto-dismiss duration for error toasts (longer to read).
const ErrorToastDuration = 8 * time.Second

// =============================================================================
// TOAST
// =============================================================================

// Toast is a transient notification with a title and description.
type Toast struct {
	Title       string
	Description string
	Kind        ToastKind
	CreatedAt   time.Time
	Duration    time.Duration
}

// NewToast creates a toast of the given kind.
func NewToast(kind ToastKind, title, description string) Toast {
	duration := DefaultToastDuration
	if kind == ToastKindError {
		duration = ErrorToastDuration
	}
	return Toast{
		Title:       title,
		Description: description,
		Kind:        kind,
		CreatedAt:   time.Now(),
		Duration:    duration,
	}
}

// Expired reports whether the toast should be dismissed.
func (t Toast) Expired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// View renders the toast line.
func (t Toast) View(theme *styles.Theme) string {
	text := t.Title
	if t.Description != "" {
		text += ": " + t.Description
	}
	switch t.Kind {
	case ToastKindError:
		return theme.ToastError.Render(text)
	case ToastKindSuccess:
		return theme.ToastSuccess.Render(text)
	default:
		return theme.ToastInfo.Render(text)
	}
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// ToastExpiredMsg signals the active toast's dismiss timer fired.
type ToastExpiredMsg struct{}

// DismissCmd returns a command that fires when the toast expires.
func (t Toast) DismissCmd() tea.Cmd {
	return tea.Tick(t.Duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{}
	})
}
