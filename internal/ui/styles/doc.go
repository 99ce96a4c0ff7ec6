// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for timeline-tui.
//
// All colors are Lip Gloss AdaptiveColor values so the interface reads
// correctly on both light and dark terminals. The Theme type bundles the
// styles the timeline view uses: header, event rows, and status bar.
//
// # Usage
//
// Create a theme once at startup and share it:
//
//	theme := styles.NewTheme()
//	line := theme.Sender.Render("alice")
package styles
