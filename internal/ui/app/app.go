// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the screens of the tripgenie TUI: the decorative
// landing page, the auth gate, and the chat interface with its session
// sidebar and markdown message thread.
package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/tripgenie-tui/internal/api"
	"github.com/morganforge/tripgenie-tui/internal/auth"
	"github.com/morganforge/tripgenie-tui/internal/chat"
	"github.com/morganforge/tripgenie-tui/internal/config"
	"github.com/morganforge/tripgenie-tui/internal/storage"
	"github.com/morganforge/tripgenie-tui/internal/ui/components"
	"github.com/morganforge/tripgenie-tui/internal/ui/styles"
)

// =============================================================================
// SCREENS
// =============================================================================

// Screen identifies which top-level surface is active.
type Screen int

const (
	ScreenLanding Screen = iota
	ScreenAuth
	ScreenChat
)

// Focus identifies which pane owns keyboard input on the chat screen.
type Focus int

const (
	FocusInput Focus = iota
	FocusSidebar
)

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model.
type App struct {
	// Services, injected once at construction
	cfg     *config.Config
	client  *api.Client
	authMgr *auth.Manager
	durable *storage.Store
	guest   *storage.Store
	chatMgr *chat.Manager // nil until an identity is active

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Screen state
	screen Screen
	focus  Focus

	// Components
	landing  *components.Landing
	form     *components.LoginForm
	header   *components.Header
	sidebar  *components.Sidebar
	markdown *components.MarkdownRenderer
	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	// Search state (sidebar filter)
	searchMode  bool
	searchInput textinput.Model

	// Notifications
	toast *components.Toast

	// Pending in-flight attempts are tracked by the chat manager; the app
	// only mirrors whether one exists for the spinner.
	quitting bool
}

// New constructs the root model. The auth manager has already restored any
// persisted identity, so a returning user skips the landing screen.
func New(cfg *config.Config, client *api.Client, authMgr *auth.Manager, durable, guest *storage.Store) (*App, error) {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Where would you like to go?"
	input.CharLimit = 2000
	input.PromptStyle = theme.InputPrompt

	searchInput := textinput.New()
	searchInput.Prompt = "/ "
	searchInput.PromptStyle = theme.InputPrompt
	searchInput.CharLimit = 128

	spin := spinner.New()
	spin.Spinner = spinner.Line

	a := &App{
		cfg:         cfg,
		client:      client,
		authMgr:     authMgr,
		durable:     durable,
		guest:       guest,
		theme:       theme,
		screen:      ScreenLanding,
		landing:     components.NewLanding(theme),
		form:        components.NewLoginForm(theme),
		header:      components.NewHeader(theme),
		sidebar:     components.NewSidebar(theme),
		markdown:    components.NewMarkdownRenderer(80),
		viewport:    viewport.New(80, 20),
		input:       input,
		searchInput: searchInput,
		spin:        spin,
	}

	if authMgr.IsAuthenticated() {
		if err := a.enterChat(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		fetchSampleQueriesCmd(a.client),
		checkHealthCmd(a.client),
		a.spin.Tick,
	)
}

// enterChat builds the chat manager for the active user and switches to
// the chat screen. Guest conversations go to the ephemeral store and die
// with the process; registered users get the durable store.
func (a *App) enterChat() error {
	user := a.authMgr.CurrentUser()
	a.client.SetToken(a.authMgr.Token())

	store := a.durable
	if user.IsGuest {
		store = a.guest
	}
	mgr, err := chat.NewManager(a.client, store, user.ID)
	if err != nil {
		return err
	}
	a.chatMgr = mgr
	a.screen = ScreenChat
	a.focus = FocusInput
	a.input.Focus()
	a.refreshSidebar()
	a.refreshThread()
	return nil
}

// leaveChat tears chat state down and returns to the landing screen.
func (a *App) leaveChat() {
	a.chatMgr = nil
	a.client.ClearToken()
	a.screen = ScreenLanding
	a.form.Reset()
	a.searchMode = false
	a.searchInput.SetValue("")
}

// showToast installs a toast and arms its dismiss timer.
func (a *App) showToast(kind components.ToastKind, title, description string) tea.Cmd {
	t := components.NewToast(kind, title, description)
	a.toast = &t
	return t.DismissCmd()
}
