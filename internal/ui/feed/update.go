// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed provides the timeline view component for the TUI.
package feed

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the single notification waiter.
func (m Model) Init() tea.Cmd {
	return WaitForBatch(m.notifs)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case BatchAppliedMsg:
		m.lastNote = &msg.Note
		m.refresh()
		// Re-arm for the next batch.
		return m, WaitForBatch(m.notifs)

	case FeedClosedMsg:
		m.closed = true
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKey handles a key press.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Follow):
		m.follow = !m.follow
		if m.follow {
			m.viewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.Timestamps):
		m.cfg.ShowTimestamps = !m.cfg.ShowTimestamps
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Home):
		m.follow = false
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.End):
		m.follow = true
		m.viewport.GotoBottom()
		return m, nil
	}

	// Manual scrolling releases follow mode.
	if key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.PageUp) {
		m.follow = false
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}
