// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed provides the timeline view component for the TUI.
package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/timeline-tui/internal/model"
)

const timestampFormat = "15:04"

// View renders the timeline view.
func (m Model) View() string {
	if !m.ready {
		return "Loading timeline..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderStatusBar(),
	)
}

// =============================================================================
// HEADER
// =============================================================================

// renderHeader renders the one-line room header.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render(m.tl.Name())
	meta := m.theme.HeaderMeta.Render(fmt.Sprintf("%d events", m.tl.Len()))
	return m.theme.Header.Width(m.width).Render(title + "  " + meta)
}

// =============================================================================
// TIMELINE
// =============================================================================

// renderTimeline renders every event as one or more lines.
func (m Model) renderTimeline() string {
	events := m.tl.Events()
	if len(events) == 0 {
		return m.theme.HeaderMeta.Render("No events yet.")
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, m.renderEvent(e))
	}
	return strings.Join(lines, "\n")
}

// renderEvent renders a single event row: optional timestamp column, a
// fixed-width sender column, and the body.
func (m Model) renderEvent(e model.Event) string {
	var sb strings.Builder

	if m.cfg.ShowTimestamps {
		sb.WriteString(m.theme.Timestamp.Render(e.Timestamp.Format(timestampFormat)))
		sb.WriteString(" ")
	}

	switch e.Kind {
	case model.EventMembership:
		sb.WriteString(m.theme.Membership.Render("— " + e.Sender + " " + e.Body))
		return sb.String()
	case model.EventNotice:
		sb.WriteString(m.renderSender(e.Sender))
		sb.WriteString(" ")
		sb.WriteString(m.theme.Notice.Render(e.Body))
	default:
		sb.WriteString(m.renderSender(e.Sender))
		sb.WriteString(" ")
		sb.WriteString(m.renderBody(e.Body))
	}

	if e.Edition > 0 {
		sb.WriteString(" ")
		sb.WriteString(m.theme.EditMarker.Render("(edited)"))
	}
	return sb.String()
}

// renderSender renders the sender column at a fixed display width, handling
// wide runes correctly.
func (m Model) renderSender(sender string) string {
	w := m.cfg.SenderWidth
	if w <= 0 {
		return m.theme.Sender.Render(sender)
	}
	name := runewidth.Truncate(sender, w, "…")
	name = runewidth.FillRight(name, w)
	return m.theme.Sender.Render(name)
}

// renderBody renders a message body, through glamour when markdown rendering
// is on.
func (m Model) renderBody(body string) string {
	if m.renderer == nil {
		return m.theme.Body.Render(body)
	}
	rendered, err := m.renderer.Render(body)
	if err != nil {
		return m.theme.Body.Render(body)
	}
	// Glamour pads with a surrounding blank line; events render inline.
	return strings.TrimSpace(rendered)
}

// bodyWidth is the wrap width left for message bodies after the timestamp
// and sender columns.
func (m Model) bodyWidth() int {
	w := m.width - m.cfg.SenderWidth - 1
	if m.cfg.ShowTimestamps {
		w -= len(timestampFormat) + 1
	}
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// STATUS BAR
// =============================================================================

// renderStatusBar renders the one-line status bar: last batch info on the
// left, mode and shortcuts on the right.
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.closed:
		left = m.theme.BatchFallback.Render("feed closed")
	case m.lastNote == nil:
		left = m.theme.ShortcutDesc.Render("waiting for feed")
	default:
		path := m.theme.BatchFallback.Render("direct")
		if m.lastNote.Minimized {
			path = m.theme.BatchMinimized.Render("minimized")
		}
		left = fmt.Sprintf("batch: %d ops (%s)", m.lastNote.Ops, path)
	}

	follow := "follow off"
	if m.follow {
		follow = "follow on"
	}
	right := m.theme.ShortcutKey.Render("f") + m.theme.ShortcutDesc.Render(" "+follow+"  ") +
		m.theme.ShortcutKey.Render("q") + m.theme.ShortcutDesc.Render(" quit")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
