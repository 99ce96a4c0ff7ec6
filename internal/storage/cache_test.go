// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides timeline persistence for timeline-tui.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/timeline-tui/internal/model"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "timelines.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func testEvents() []model.Event {
	ts := time.Unix(1700000000, 0).UTC()
	return []model.Event{
		{ID: "a", Kind: model.EventMessage, Sender: "@lina:example.org", Timestamp: ts, Body: "one"},
		{ID: "b", Kind: model.EventNotice, Sender: "@bot:example.org", Timestamp: ts, Body: "two", Edition: 1},
	}
}

func TestSaveAndLoadTimeline(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveTimeline(ctx, "#go-dev", testEvents()))

	events, err := cache.LoadTimeline(ctx, "#go-dev")
	require.NoError(t, err)
	require.Equal(t, testEvents(), events)
}

func TestSaveTimelineReplaces(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveTimeline(ctx, "#go-dev", testEvents()))
	require.NoError(t, cache.SaveTimeline(ctx, "#go-dev", testEvents()[:1]))

	events, err := cache.LoadTimeline(ctx, "#go-dev")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "a", events[0].ID)
}

func TestLoadTimelineNotCached(t *testing.T) {
	cache := testCache(t)

	_, err := cache.LoadTimeline(context.Background(), "#nowhere")
	require.ErrorIs(t, err, ErrNotCached)
}

func TestRooms(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveTimeline(ctx, "#zig", testEvents()[:1]))
	require.NoError(t, cache.SaveTimeline(ctx, "#go-dev", testEvents()))

	rooms, err := cache.Rooms(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"#go-dev", "#zig"}, rooms)
}

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, WriteSnapshot(path, "#go-dev", testEvents()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	require.Equal(t, "#go-dev", snapshot.Room)
	require.Equal(t, testEvents(), snapshot.Events)
	require.False(t, snapshot.ExportedAt.IsZero())
}
