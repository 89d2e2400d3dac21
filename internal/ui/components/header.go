// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for tripgenie TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/tripgenie-tui/internal/model"
	"github.com/morganforge/tripgenie-tui/internal/ui/styles"
)

// =============================================================================
// HEADER
// =============================================================================

// Header renders the top bar: brand, current session title, active user.
type Header struct {
	User         *model.User
	SessionTitle string
	Width        int

	theme *styles.Theme
}

// NewHeader creates a header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// View renders the header line.
func (h *Header) View() string {
	brand := h.theme.HeaderTitle.Render("TripGenie")

	title := ""
	if h.SessionTitle != "" {
		title = " - " + h.SessionTitle
	}

	userLabel := ""
	if h.User != nil {
		userLabel = h.User.DisplayName()
		if h.User.IsGuest {
			userLabel += " (guest)"
		}
	}
	user := h.theme.HeaderUser.Render(userLabel)

	left := brand + h.theme.HeaderUser.Render(title)
	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(user) - 2
	if gap < 1 {
		gap = 1
	}

	return h.theme.Header.
		Width(h.Width).
		Render(left + lipgloss.NewStyle().Width(gap).Render("") + user)
}
