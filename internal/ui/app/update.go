// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the screens of the tripgenie TUI.
package app

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/tripgenie-tui/internal/api"
	"github.com/morganforge/tripgenie-tui/internal/ui/components"
	"github.com/morganforge/tripgenie-tui/internal/util"
)

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.handleResize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		if a.chatMgr != nil && a.chatMgr.IsPending() {
			a.refreshThread()
		}
		return a, cmd

	case sampleQueriesMsg:
		a.landing.SetSampleQueries(msg.queries)
		return a, nil

	case healthResultMsg:
		if msg.err != nil {
			return a, a.showToast(components.ToastKindError, "Offline",
				"Trip planner service is unreachable")
		}
		return a, nil

	case components.ToastExpiredMsg:
		if a.toast != nil && a.toast.Expired() {
			a.toast = nil
		}
		return a, nil

	case authResultMsg:
		return a.handleAuthResult(msg)

	case sendResultMsg:
		return a.handleSendResult(msg)

	case tea.KeyMsg:
		switch a.screen {
		case ScreenLanding:
			return a.updateLanding(msg)
		case ScreenAuth:
			return a.updateAuth(msg)
		case ScreenChat:
			return a.updateChat(msg)
		}
	}

	return a, nil
}

// =============================================================================
// RESIZE
// =============================================================================

// handleResize recomputes the layout. The chat screen is header (1 line) +
// sidebar | thread viewport, with the input (3 lines) and status line below
// the thread.
func (a *App) handleResize(width, height int) {
	a.width = width
	a.height = height

	a.landing.SetSize(width, height)
	a.form.SetSize(width, height)
	a.header.Width = width

	sidebarWidth := a.cfg.UI.SidebarWidth
	if sidebarWidth > width/3 {
		sidebarWidth = width / 3
	}
	threadWidth := width - sidebarWidth - 2

	// header 1, input 3, status 1
	bodyHeight := height - 5
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	a.sidebar.SetSize(sidebarWidth, bodyHeight)
	a.viewport.Width = threadWidth
	a.viewport.Height = bodyHeight
	a.input.Width = threadWidth - 6
	a.markdown.SetWidth(threadWidth - 16)

	if a.screen == ScreenChat {
		a.refreshThread()
	}
}

// =============================================================================
// LANDING SCREEN
// =============================================================================

func (a *App) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		a.quitting = true
		return a, tea.Quit
	case "enter":
		a.screen = ScreenAuth
		a.form.Reset()
		return a, nil
	case "g":
		return a.loginAsGuest()
	}
	return a, nil
}

// =============================================================================
// AUTH SCREEN
// =============================================================================

func (a *App) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit
	case "esc":
		a.screen = ScreenLanding
		return a, nil
	case "ctrl+g":
		return a.loginAsGuest()
	case "ctrl+s":
		a.form.ToggleMode()
		return a, nil
	case "tab", "shift+tab", "down", "up":
		a.form.CycleFocus()
		return a, nil
	case "enter":
		return a.submitAuthForm()
	}

	return a, a.form.Update(msg)
}

// submitAuthForm validates locally and dispatches the network call.
func (a *App) submitAuthForm() (tea.Model, tea.Cmd) {
	if a.form.Busy {
		return a, nil
	}
	if msg := a.form.Validate(); msg != "" {
		a.form.ErrorText = msg
		return a, nil
	}

	a.form.ErrorText = ""
	a.form.Busy = true
	name, email, password := a.form.Values()
	return a, loginCmd(a.authMgr, a.form.Mode == components.ModeSignup, name, email, password)
}

// handleAuthResult settles a login or signup attempt. Failure leaves auth
// state untouched; the server's message (or a generic fallback) is shown
// and the user decides whether to re-prompt.
func (a *App) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	a.form.Busy = false

	if msg.err != nil {
		var apiErr *api.APIError
		if errors.As(msg.err, &apiErr) {
			a.form.ErrorText = apiErr.UserMessage()
		} else {
			a.form.ErrorText = "Could not reach the trip planner service. Please try again."
		}
		return a, nil
	}

	if err := a.enterChat(); err != nil {
		a.form.ErrorText = "Failed to load your conversations."
		return a, nil
	}
	return a, a.showToast(components.ToastKindSuccess, "Welcome", a.authMgr.CurrentUser().DisplayName())
}

// loginAsGuest synthesizes a guest identity locally; it cannot fail.
func (a *App) loginAsGuest() (tea.Model, tea.Cmd) {
	a.authMgr.LoginAsGuest()
	if err := a.enterChat(); err != nil {
		a.screen = ScreenLanding
		return a, a.showToast(components.ToastKindError, "Error", "Failed to start a guest session.")
	}
	return a, a.showToast(components.ToastKindInfo, "Guest mode", "Conversations live only for this run")
}

// =============================================================================
// CHAT SCREEN
// =============================================================================

func (a *App) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search mode captures all input until dismissed.
	if a.searchMode {
		return a.updateSearch(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit
	case "ctrl+n":
		if _, err := a.chatMgr.CreateNewSession(); err != nil {
			return a, a.showToast(components.ToastKindError, "Error", "Failed to create conversation")
		}
		a.refreshSidebar()
		a.refreshThread()
		return a, nil
	case "ctrl+x":
		if err := a.chatMgr.ClearCurrentChat(); err != nil {
			return a, a.showToast(components.ToastKindError, "Error", "Failed to clear conversation")
		}
		a.refreshThread()
		a.refreshSidebar()
		return a, nil
	case "ctrl+o":
		return a.logout()
	case "ctrl+e":
		return a.exportCurrentSession()
	case "tab":
		if a.focus == FocusInput {
			a.focus = FocusSidebar
			a.input.Blur()
			a.sidebar.FocusIndex = 0
		} else {
			a.focus = FocusInput
			a.input.Focus()
		}
		return a, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	if a.focus == FocusSidebar {
		return a.updateSidebar(msg)
	}
	return a.updateInput(msg)
}

func (a *App) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.sidebar.MoveFocus(-1)
	case "down", "j":
		a.sidebar.MoveFocus(1)
	case "enter":
		if sess := a.sidebar.FocusedSession(); sess != nil {
			a.chatMgr.SelectSession(sess.ID)
			a.refreshSidebar()
			a.refreshThread()
			a.focus = FocusInput
			a.input.Focus()
		}
	case "d":
		if sess := a.sidebar.FocusedSession(); sess != nil {
			if err := a.chatMgr.DeleteSession(sess.ID); err != nil {
				return a, a.showToast(components.ToastKindError, "Error", "Failed to delete conversation")
			}
			a.sidebar.MoveFocus(0)
			a.refreshSidebar()
			a.refreshThread()
			// Deletion is confirmed solely via a notification.
			return a, a.showToast(components.ToastKindSuccess, "Deleted", "Conversation removed")
		}
	case "/":
		a.searchMode = true
		a.searchInput.SetValue("")
		a.searchInput.Focus()
	case "esc":
		a.focus = FocusInput
		a.input.Focus()
	}
	return a, nil
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searchMode = false
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.refreshSidebar()
		return a, nil
	case "enter":
		a.searchMode = false
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.refreshSidebar()
	return a, cmd
}

func (a *App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return a.sendCurrentInput()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// sendCurrentInput optimistically appends the typed message and dispatches
// the request. Sends are not serialized: a second enter while one is in
// flight just starts another attempt.
func (a *App) sendCurrentInput() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(a.input.Value())
	if content == "" {
		return a, nil
	}

	attempt, err := a.chatMgr.BeginSend(content)
	if err != nil {
		return a, a.showToast(components.ToastKindError, "Error", "Failed to save your message")
	}

	a.input.SetValue("")
	a.refreshSidebar()
	a.refreshThread()
	return a, tea.Batch(
		sendCmd(a.client, attempt, a.cfg.Timeout()),
		a.spin.Tick,
	)
}

// handleSendResult settles an in-flight send against the session it was
// dispatched for.
func (a *App) handleSendResult(msg sendResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if err := a.chatMgr.FailSend(msg.attempt); err != nil {
			return a, a.showToast(components.ToastKindError, "Error", "Failed to roll back message")
		}
		a.refreshSidebar()
		a.refreshThread()

		var apiErr *api.APIError
		if errors.As(msg.err, &apiErr) {
			return a, a.showToast(components.ToastKindError, "Message failed", apiErr.UserMessage())
		}
		return a, a.showToast(components.ToastKindError, "Message failed", "Could not reach the trip planner service")
	}

	if err := a.chatMgr.CompleteSend(msg.attempt, msg.resp); err != nil {
		return a, a.showToast(components.ToastKindError, "Error", "Failed to save the reply")
	}
	a.refreshSidebar()
	a.refreshThread()
	return a, nil
}

// exportCurrentSession writes the current conversation as markdown under
// the data directory.
func (a *App) exportCurrentSession() (tea.Model, tea.Cmd) {
	sess := a.chatMgr.Current()
	if sess == nil || sess.IsEmpty() {
		return a, a.showToast(components.ToastKindInfo, "Nothing to export", "")
	}

	dataDir, err := a.cfg.DataDir()
	if err != nil {
		return a, a.showToast(components.ToastKindError, "Export failed", err.Error())
	}

	path := filepath.Join(dataDir, "exports", sess.ID+".md")
	if err := util.AtomicWriteFile(path, []byte(sess.ExportMarkdown()), 0644); err != nil {
		return a, a.showToast(components.ToastKindError, "Export failed", err.Error())
	}
	return a, a.showToast(components.ToastKindSuccess, "Exported", path)
}

// logout clears identity and every persisted conversation, then forces
// navigation back to the entry surface.
func (a *App) logout() (tea.Model, tea.Cmd) {
	if err := a.authMgr.Logout(); err != nil {
		return a, a.showToast(components.ToastKindError, "Error", "Failed to sign out cleanly")
	}
	a.leaveChat()
	return a, a.showToast(components.ToastKindInfo, "Signed out", "")
}
