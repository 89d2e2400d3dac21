// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for tripgenie TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/morganforge/tripgenie-tui/internal/model"
	"github.com/morganforge/tripgenie-tui/internal/ui/styles"
)

// =============================================================================
// SESSION SIDEBAR
// =============================================================================

// Sidebar renders the conversation history list. The highlighted row tracks
// keyboard focus; the current session is marked with a bullet.
type Sidebar struct {
	Sessions    []*model.ChatSession
	CurrentID   string
	FocusIndex  int
	Width       int
	Height      int
	SearchQuery string

	theme *styles.Theme
}

// NewSidebar creates a sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{
		Width:  32,
		Height: 20,
		theme:  theme,
	}
}

// SetSize updates the dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// MoveFocus moves the keyboard focus by delta, clamped to the list.
func (s *Sidebar) MoveFocus(delta int) {
	s.FocusIndex += delta
	if s.FocusIndex < 0 {
		s.FocusIndex = 0
	}
	if max := len(s.Sessions) - 1; s.FocusIndex > max {
		s.FocusIndex = max
	}
}

// FocusedSession returns the session under keyboard focus, or nil.
func (s *Sidebar) FocusedSession() *model.ChatSession {
	if s.FocusIndex < 0 || s.FocusIndex >= len(s.Sessions) {
		return nil
	}
	return s.Sessions[s.FocusIndex]
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	var rows []string

	title := "Conversations"
	if s.SearchQuery != "" {
		title = "Search: " + s.SearchQuery
	}
	rows = append(rows, s.theme.SidebarTitle.Render(title), "")

	if len(s.Sessions) == 0 {
		rows = append(rows, s.theme.SidebarItemTimestamp.Render("No conversations yet"))
	}

	// One row per session: marker, truncated title, relative timestamp.
	textWidth := s.Width - 6
	if textWidth < 8 {
		textWidth = 8
	}
	for i, sess := range s.Sessions {
		marker := "  "
		if sess.ID == s.CurrentID {
			marker = "* "
		}

		label := marker + truncateWidth(sess.Title, textWidth)
		style := s.theme.SidebarItem
		if i == s.FocusIndex {
			style = s.theme.SidebarItemSelected
		}

		rows = append(rows, style.Render(label))
		rows = append(rows, s.theme.SidebarItemTimestamp.Render("  "+sess.UpdatedAt.Format("Jan 2, 15:04")))
	}

	body := strings.Join(rows, "\n")
	return s.theme.Sidebar.
		Width(s.Width).
		Height(s.Height).
		Render(lipgloss.NewStyle().MaxHeight(s.Height).Render(body))
}

// truncateWidth truncates to a display width, accounting for double-width
// characters in destination names.
func truncateWidth(text string, maxWidth int) string {
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	return runewidth.Truncate(text, maxWidth, "...")
}
