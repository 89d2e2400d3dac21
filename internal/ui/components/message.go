// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for tripgenie TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/tripgenie-tui/internal/model"
	"github.com/morganforge/tripgenie-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single message in the thread.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool
	Markdown      *MarkdownRenderer

	theme *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsTyping {
		return b.renderTyping()
	}
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	default:
		return b.renderAssistantBubble()
	}
}

// ==========================================================================
// USER BUBBLE - right-aligned feel, plain text
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	bubble := b.theme.UserBubble.
		MaxWidth(maxContentWidth).
		Render(content)

	label := b.theme.RoleLabel.Render(strings.ToLower(b.Message.Role.DisplayName()))
	meta := label
	if b.ShowTimestamp {
		meta += " " + b.theme.Timestamp.Render(b.Message.Timestamp.Format("15:04"))
	}

	block := lipgloss.JoinVertical(lipgloss.Right, meta, bubble)
	return lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Right).
		Render(block)
}

// ==========================================================================
// ASSISTANT BUBBLE - markdown body, trip-plan badge
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	if b.Markdown != nil {
		b.Markdown.SetWidth(maxContentWidth - 4)
		content = strings.TrimRight(b.Markdown.Render(content), "\n")
	}

	bubble := b.theme.AssistantBubble.
		MaxWidth(maxContentWidth).
		Render(content)

	meta := b.theme.RoleLabel.Render(b.Message.Role.DisplayName())
	if b.Message.ContainsTripPlan() {
		meta += " " + b.theme.TripPlanBadge.Render("trip plan")
	}
	if b.ShowTimestamp {
		meta += " " + b.theme.Timestamp.Render(b.Message.Timestamp.Format("15:04"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, meta, bubble)
}

// ==========================================================================
// TYPING INDICATOR
// ==========================================================================

func (b *MessageBubble) renderTyping() string {
	label := b.theme.RoleLabel.Render(model.RoleAssistant.DisplayName())
	body := b.theme.AssistantBubble.Render("is thinking...")
	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}
