// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for timeline-tui.
package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	require.NotNil(t, theme)

	// Styles must render without panicking even before SetSize.
	require.NotEmpty(t, theme.HeaderTitle.Render("#general"))
	require.NotEmpty(t, theme.Sender.Render("alice"))
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme()

	theme.SetSize(40, 20)
	require.Equal(t, LayoutNarrow, theme.GetLayoutMode())

	theme.SetSize(120, 40)
	require.Equal(t, LayoutWide, theme.GetLayoutMode())
	require.Equal(t, 120, theme.Width)
	require.Equal(t, 40, theme.Height)
}
