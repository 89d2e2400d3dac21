// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns conversation state and the send lifecycle for the
// active user.
//
// # Sending
//
// Sends are optimistic and settle asynchronously:
//
//	attempt, _ := mgr.BeginSend("3 days in Rome")  // user message visible now
//	resp, err := client.Chat(ctx, attempt.Request) // off the UI goroutine
//	if err != nil {
//	    mgr.FailSend(attempt)       // rollback to pre-send snapshot
//	} else {
//	    mgr.CompleteSend(attempt, resp)
//	}
//
// Attempts are tagged with their session id, so a response that lands after
// the user switched or deleted sessions settles against the right one or is
// discarded.
package chat
