// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room provides the materialized timeline of a chat room.
//
// A Timeline owns the ordered list of entries displayed to the user and is
// the concrete item store the diff minimizer operates on. Batches of feed
// diffs are applied through Apply, which minimizes eligible batches and
// falls back to naive application or a full rebuild for the rest. Observers
// receive one notification per structural change, so a view layer can
// refresh exactly the rows that moved or changed.
//
// # Key Types
//
//   - Entry: Materialized timeline item, reused across edits of one event
//   - Timeline: Ordered entry list implementing timeline.ItemStore
//
// # Usage
//
// Apply a feed batch and observe the changes:
//
//	tl := room.New("#go-dev")
//	tl.OnSplice(func(pos, nRemovals int, added []*room.Entry) { ... })
//	tl.OnUpdate(func(pos, nItems int) { ... })
//	tl.Apply(diffs)
//
// A Timeline is not safe for concurrent use; one goroutine must own it for
// the duration of every Apply call.
package room
