// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides timeline persistence for timeline-tui.
//
// A Cache stores the materialized timeline of each room in a local SQLite
// database so a restarted client resumes where it left off instead of
// replaying the whole feed. Timelines can also be exported as JSON
// snapshots for inspection or backup.
//
// # Key Types
//
//   - Cache: SQLite-backed per-room timeline store
//   - Snapshot: JSON export of one room's timeline
//
// # Usage
//
// Open a cache and resume a room:
//
//	cache, err := storage.Open(cfg.DatabasePath)
//	events, err := cache.LoadTimeline(ctx, "#go-dev")
package storage
