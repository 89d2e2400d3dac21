// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, messages, and chat sessions.
package model

import "strings"

// tripPlanKeywords are substrings that suggest an assistant reply contains
// a generated trip plan. Matched against the lowercased content.
var tripPlanKeywords = []string{
	"itinerary",
	"day 1",
	"schedule",
	"trip plan",
}

// ContainsTripPlan reports whether a message looks like it carries a
// generated trip plan. Only assistant messages qualify; the check is plain
// string matching with no structural parsing, so false positives and
// negatives are expected and accepted.
//
// The "## Day" + "**Start Date:**" pair matches the markdown skeleton the
// trip-planner service emits for full itineraries.
func (m *Message) ContainsTripPlan() bool {
	if m.Role != RoleAssistant {
		return false
	}

	lower := strings.ToLower(m.Content)
	for _, kw := range tripPlanKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	return strings.Contains(m.Content, "## Day") &&
		strings.Contains(m.Content, "**Start Date:**")
}
