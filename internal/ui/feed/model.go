// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed provides the timeline view component for the TUI.
package feed

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/timeline-tui/internal/config"
	intake "github.com/jeranaias/timeline-tui/internal/feed"
	"github.com/jeranaias/timeline-tui/internal/room"
	"github.com/jeranaias/timeline-tui/internal/ui/styles"
)

// =============================================================================
// TIMELINE VIEW MODEL
// =============================================================================

// Model is the Bubble Tea model for the timeline view.
type Model struct {
	// Timeline being displayed. The feed runner is its only writer; the
	// view reads it on the Bubble Tea goroutine after each notification.
	tl     *room.Timeline
	notifs <-chan intake.Notification

	// Display options
	cfg   config.UIConfig
	theme *styles.Theme
	keys  KeyMap

	// UI components
	viewport viewport.Model
	renderer *glamour.TermRenderer

	// Dimensions
	width  int
	height int
	ready  bool

	// Follow keeps the viewport pinned to the newest events.
	follow bool

	// Last applied batch, for the status bar.
	lastNote *intake.Notification
	closed   bool
}

// New creates a timeline view for the given timeline, fed by the runner's
// notification channel.
func New(tl *room.Timeline, notifs <-chan intake.Notification, cfg config.UIConfig) Model {
	return Model{
		tl:     tl,
		notifs: notifs,
		cfg:    cfg,
		theme:  styles.NewTheme(),
		keys:   DefaultKeyMap(),
		follow: true,
	}
}

// resize lays the view out for a new terminal size and rebuilds the
// markdown renderer at the matching word-wrap width.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	// One line of header, one of status bar.
	viewHeight := height - 2
	if viewHeight < 1 {
		viewHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, viewHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = viewHeight
	}

	m.renderer = nil
	if m.cfg.RenderMarkdown {
		bodyWidth := m.bodyWidth()
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(bodyWidth),
		)
		if err == nil {
			m.renderer = r
		}
		// On error fall back to plain text rendering.
	}

	m.refresh()
}

// refresh re-renders the timeline into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTimeline())
	if m.follow {
		m.viewport.GotoBottom()
	}
}
