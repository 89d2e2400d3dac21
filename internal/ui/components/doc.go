// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for tripgenie TUI:
// the landing screen, login form, header, session sidebar, message bubbles
// with markdown rendering, and toast notifications.
package components
