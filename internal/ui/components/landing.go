// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for tripgenie TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/tripgenie-tui/internal/ui/styles"
)

// =============================================================================
// LANDING SCREEN
// =============================================================================

// defaultSampleQueries are shown when the sample-queries endpoint is
// unreachable (the landing screen renders before any auth happens).
var defaultSampleQueries = []string{
	"Create a 5-day itinerary for Paris for 2 people interested in art and food",
	"Find flights from JFK to Paris on July 5th for 2 people",
	"Show me luxury hotels in Tokyo for next month",
}

// Landing is the decorative entry screen shown before authentication.
type Landing struct {
	Version       string
	SampleQueries []string

	width  int
	height int
	theme  *styles.Theme
}

// NewLanding creates the landing screen.
func NewLanding(theme *styles.Theme) *Landing {
	return &Landing{
		Version:       "dev",
		SampleQueries: defaultSampleQueries,
		theme:         theme,
	}
}

// SetSize updates the dimensions.
func (l *Landing) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetSampleQueries replaces the built-in suggestions with server-provided
// ones.
func (l *Landing) SetSampleQueries(queries []string) {
	if len(queries) > 0 {
		l.SampleQueries = queries
	}
}

// View renders the landing screen centered in the window.
func (l *Landing) View() string {
	var sb strings.Builder

	sb.WriteString(l.theme.LandingTitle.Render("TripGenie"))
	sb.WriteString("\n")
	sb.WriteString(l.theme.LandingSubtitle.Render("Your AI travel assistant - flights, hotels, itineraries"))
	sb.WriteString("\n\n")
	sb.WriteString(l.theme.LandingSubtitle.Render("Try asking:"))
	sb.WriteString("\n")
	for _, q := range l.SampleQueries {
		sb.WriteString(l.theme.LandingQuery.Render("- " + q))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(l.theme.FormHint.Render("press enter to sign in - g for guest mode - q to quit"))

	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, sb.String())
}
