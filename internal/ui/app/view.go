// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the screens of the tripgenie TUI.
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/tripgenie-tui/internal/model"
	"github.com/morganforge/tripgenie-tui/internal/ui/components"
)

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.width == 0 {
		return "loading..."
	}

	switch a.screen {
	case ScreenLanding:
		return a.landing.View()
	case ScreenAuth:
		return a.form.View()
	default:
		return a.viewChat()
	}
}

// =============================================================================
// CHAT LAYOUT
// =============================================================================

// viewChat assembles header, sidebar, thread, input, and status line.
func (a *App) viewChat() string {
	a.header.User = a.authMgr.CurrentUser()
	a.header.SessionTitle = ""
	if sess := a.chatMgr.Current(); sess != nil {
		a.header.SessionTitle = sess.Title
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.sidebar.View(),
		a.viewport.View(),
	)

	inputLine := a.theme.InputContainer.
		Width(a.viewport.Width).
		Render(a.input.View())
	if a.searchMode {
		inputLine = a.theme.InputContainer.
			Width(a.viewport.Width).
			Render(a.searchInput.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.header.View(),
		body,
		inputLine,
		a.statusLine(),
	)
}

// statusLine shows the active toast if any, otherwise key hints and the
// in-flight spinner.
func (a *App) statusLine() string {
	if a.toast != nil && !a.toast.Expired() {
		return a.toast.View(a.theme)
	}

	hint := "enter: send - tab: sidebar - ctrl+n: new - ctrl+x: clear - ctrl+e: export - ctrl+o: sign out - ctrl+c: quit"
	if a.focus == FocusSidebar {
		hint = "enter: open - d: delete - /: search - tab: back - ctrl+c: quit"
	}
	if a.searchMode {
		hint = "type to filter - enter: keep - esc: clear"
	}

	if a.chatMgr != nil && a.chatMgr.IsPending() {
		hint = a.spin.View() + " waiting for TripGenie... | " + hint
	}

	return a.theme.StatusBar.Width(a.width).Render(hint)
}

// =============================================================================
// CONTENT REFRESH
// =============================================================================

// refreshSidebar rebuilds the sidebar's session list, applying the active
// search filter.
func (a *App) refreshSidebar() {
	if a.chatMgr == nil {
		return
	}

	query := strings.TrimSpace(a.searchInput.Value())
	a.sidebar.SearchQuery = query
	a.sidebar.Sessions = a.chatMgr.SearchSessions(query)
	a.sidebar.CurrentID = ""
	if sess := a.chatMgr.Current(); sess != nil {
		a.sidebar.CurrentID = sess.ID
	}
	a.sidebar.MoveFocus(0)
}

// refreshThread rebuilds the viewport content from the current session and
// scrolls to the latest message.
func (a *App) refreshThread() {
	if a.chatMgr == nil {
		return
	}

	sess := a.chatMgr.Current()
	if sess == nil {
		a.viewport.SetContent(a.theme.FormHint.Render("\n  Press ctrl+n to start planning a trip."))
		return
	}

	var blocks []string
	if len(sess.Messages) == 0 {
		blocks = append(blocks, a.theme.FormHint.Render("\n  Ask anything about your next trip."))
	}

	for _, msg := range sess.Messages {
		bubble := components.NewMessageBubble(msg, a.theme)
		bubble.SetWidth(a.viewport.Width)
		bubble.ShowTimestamp = a.cfg.UI.ShowTimestamps
		if a.cfg.UI.RenderMarkdown {
			bubble.Markdown = a.markdown
		}
		blocks = append(blocks, bubble.View())
	}

	if a.chatMgr.IsPending() {
		bubble := components.NewMessageBubble(model.NewTypingIndicator(), a.theme)
		bubble.SetWidth(a.viewport.Width)
		blocks = append(blocks, bubble.View())
	}

	a.viewport.SetContent(strings.Join(blocks, "\n\n"))
	a.viewport.GotoBottom()
}
