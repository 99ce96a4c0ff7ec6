// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed provides the timeline view component for the TUI.
//
// The view is a Bubble Tea model that renders one room timeline inside a
// scrollable viewport. It subscribes to the feed runner's applied-batch
// notifications and refreshes whenever a batch lands; while "follow" is on
// the viewport sticks to the newest events.
//
// # Key Types
//
//   - Model: the Bubble Tea model for the timeline view
//   - BatchAppliedMsg: delivered when the runner applies a diff batch
//   - KeyMap: keyboard bindings for scrolling and toggles
//
// # Usage
//
//	m := feed.New(tl, runner.Notifications(), cfg.UI)
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package feed
