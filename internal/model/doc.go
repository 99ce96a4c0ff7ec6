// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for timeline events.
//
// An event is the raw payload flowing from a feed into a room timeline. It
// carries a stable identity so the timeline can tell an edit of an existing
// event apart from a new one.
//
// # Key Types
//
//   - Event: Single timeline event with identity, sender, body and kind
//   - EventKind: Event kind enumeration (message, notice, membership)
//
// # Usage
//
// Create a new message event:
//
//	ev := model.NewMessage("@lina:example.org", "hello")
//
// Derive an edited revision keeping the identity:
//
//	edited := ev.Edited("hello, world")
package model
