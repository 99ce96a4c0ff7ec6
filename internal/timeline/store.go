// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline provides diff minimization for ordered, identity-keyed
// item lists.
package timeline

// =============================================================================
// IDENTITY CONTRACTS
// =============================================================================

// Data is a raw source payload carrying a stable identity. Two payloads
// describe the same logical item iff their timeline IDs are equal.
type Data interface {
	// TimelineID returns the stable identity key of the payload.
	TimelineID() string
}

// Item is a materialized, identity-bearing unit owned by an ItemStore. An
// item keeps its identity for its whole lifetime, independent of position.
type Item interface {
	// TimelineID returns the stable identity key of the item.
	TimelineID() string
}

// =============================================================================
// ITEM STORE
// =============================================================================

// ItemStore is the backing collection a Minimizer operates on. The store
// owns the items; the minimizer only manipulates identities and instructs
// the store to create, update and reposition items.
//
// The same goroutine must own the store across one full minimize pass: the
// minimizer assumes nothing else mutates the collection between Items and
// ApplyItemDiffList.
type ItemStore[I Item, D Data] interface {
	// Items returns the current materialized sequence, in order.
	Items() []I

	// CreateItem constructs a new item for data not previously seen.
	CreateItem(data D) I

	// UpdateItem refreshes an existing item's content from new data of the
	// same identity.
	UpdateItem(item I, data D)

	// ApplyItemDiffList materializes the minimized operations, in order.
	// Each operation's position is relative to the sequence state after all
	// earlier operations in the list have been applied.
	ApplyItemDiffList(diffs []ItemDiff[I])
}

// =============================================================================
// MINIMIZED OUTPUT OPERATIONS
// =============================================================================

// ItemDiff is a minimized operation on a store's backing collection, either
// a SpliceDiff or an UpdateDiff.
type ItemDiff[I Item] interface {
	isItemDiff()
}

// SpliceDiff removes NRemovals consecutive items starting at Pos and inserts
// Additions at that position, as one atomic structural change.
type SpliceDiff[I Item] struct {
	// Pos is the position where the change happens.
	Pos int
	// NRemovals is the number of items to remove.
	NRemovals int
	// Additions are the already-constructed items to add.
	Additions []I
}

func (SpliceDiff[I]) isItemDiff() {}

// UpdateDiff refreshes NItems consecutive items starting at Pos in place.
// The items keep their identity and position; only their content changed.
type UpdateDiff struct {
	// Pos is the position from where to start updating items.
	Pos int
	// NItems is the number of items to update.
	NItems int
}

func (UpdateDiff) isItemDiff() {}
