// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed provides the timeline view component for the TUI.
package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	intake "github.com/jeranaias/timeline-tui/internal/feed"
)

// =============================================================================
// MESSAGES
// =============================================================================

// BatchAppliedMsg is delivered when the runner has applied a diff batch to
// the timeline.
type BatchAppliedMsg struct {
	Note intake.Notification
}

// FeedClosedMsg is delivered when the notification channel closes. No more
// batches will arrive.
type FeedClosedMsg struct{}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// WaitForBatch creates a command that blocks on the runner's notification
// channel and delivers the next applied batch as a message. The model
// re-issues it after handling each BatchAppliedMsg, so exactly one waiter
// exists at a time.
func WaitForBatch(notifs <-chan intake.Notification) tea.Cmd {
	return func() tea.Msg {
		note, ok := <-notifs
		if !ok {
			return FeedClosedMsg{}
		}
		return BatchAppliedMsg{Note: note}
	}
}
