// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for tripgenie TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/tripgenie-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN / SIGNUP FORM
// =============================================================================

// FormMode selects between the login and signup variants of the form.
type FormMode int

const (
	ModeLogin FormMode = iota
	ModeSignup
)

// Field indexes within the form. Name only exists in signup mode.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// LoginForm is the credential entry form with a guest escape hatch.
type LoginForm struct {
	Mode FormMode

	inputs []textinput.Model
	focus  int

	// ErrorText is the server or validation message shown under the form.
	ErrorText string
	// Busy disables submission while a request is outstanding.
	Busy bool

	width  int
	height int
	theme  *styles.Theme
}

// NewLoginForm creates the form in login mode.
func NewLoginForm(theme *styles.Theme) *LoginForm {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	f := &LoginForm{
		Mode:   ModeLogin,
		inputs: []textinput.Model{name, email, password},
		theme:  theme,
	}
	f.setFocus(fieldEmail)
	return f
}

// SetSize updates the dimensions.
func (f *LoginForm) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// Reset clears input state and errors.
func (f *LoginForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.ErrorText = ""
	f.Busy = false
	if f.Mode == ModeSignup {
		f.setFocus(fieldName)
	} else {
		f.setFocus(fieldEmail)
	}
}

// ToggleMode switches between login and signup.
func (f *LoginForm) ToggleMode() {
	if f.Mode == ModeLogin {
		f.Mode = ModeSignup
	} else {
		f.Mode = ModeLogin
	}
	f.Reset()
}

// Values returns the current name, email, and password.
func (f *LoginForm) Values() (name, email, password string) {
	return strings.TrimSpace(f.inputs[fieldName].Value()),
		strings.TrimSpace(f.inputs[fieldEmail].Value()),
		f.inputs[fieldPassword].Value()
}

// Validate returns a user-facing message for locally detectable problems,
// or empty when the form can be submitted.
func (f *LoginForm) Validate() string {
	name, email, password := f.Values()
	if f.Mode == ModeSignup && name == "" {
		return "Name is required"
	}
	if email == "" || !strings.Contains(email, "@") {
		return "A valid email is required"
	}
	if password == "" {
		return "Password is required"
	}
	return ""
}

// CycleFocus advances keyboard focus to the next visible field.
func (f *LoginForm) CycleFocus() {
	next := f.focus + 1
	if next >= fieldCount {
		next = f.firstField()
	}
	f.setFocus(next)
}

// Update forwards key input to the focused field.
func (f *LoginForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the form centered in the window.
func (f *LoginForm) View() string {
	var sb strings.Builder

	title := "Sign in to TripGenie"
	if f.Mode == ModeSignup {
		title = "Create your TripGenie account"
	}
	sb.WriteString(f.theme.LandingTitle.Render(title))
	sb.WriteString("\n\n")

	if f.Mode == ModeSignup {
		sb.WriteString(f.theme.FormLabel.Render("Name"))
		sb.WriteString("\n")
		sb.WriteString(f.inputs[fieldName].View())
		sb.WriteString("\n\n")
	}

	sb.WriteString(f.theme.FormLabel.Render("Email"))
	sb.WriteString("\n")
	sb.WriteString(f.inputs[fieldEmail].View())
	sb.WriteString("\n\n")

	sb.WriteString(f.theme.FormLabel.Render("Password"))
	sb.WriteString("\n")
	sb.WriteString(f.inputs[fieldPassword].View())
	sb.WriteString("\n\n")

	if f.ErrorText != "" {
		sb.WriteString(f.theme.FormError.Render(f.ErrorText))
		sb.WriteString("\n\n")
	}

	button := "Sign in"
	if f.Mode == ModeSignup {
		button = "Sign up"
	}
	if f.Busy {
		button = "Please wait..."
	}
	sb.WriteString(f.theme.FormButton.Render(button))
	sb.WriteString("\n\n")

	hint := "tab: next field - enter: submit - ctrl+s: switch to signup - ctrl+g: continue as guest"
	if f.Mode == ModeSignup {
		hint = "tab: next field - enter: submit - ctrl+s: switch to login - ctrl+g: continue as guest"
	}
	sb.WriteString(f.theme.FormHint.Render(hint))

	return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center, sb.String())
}

// firstField returns the first visible field for the current mode.
func (f *LoginForm) firstField() int {
	if f.Mode == ModeSignup {
		return fieldName
	}
	return fieldEmail
}

// setFocus focuses one field and blurs the rest.
func (f *LoginForm) setFocus(idx int) {
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}
