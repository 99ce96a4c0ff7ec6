// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline provides diff minimization for ordered, identity-keyed
// item lists.
package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST STORE
// =============================================================================

// testData is a source payload for minimizer tests.
type testData struct {
	id      string
	version int
}

func (d testData) TimelineID() string { return d.id }

// testItem is a materialized item for minimizer tests.
type testItem struct {
	id        string
	version   int
	processed bool // set when touched by ApplyItemDiffList
}

func (it *testItem) TimelineID() string { return it.id }

// testStore is a slice-backed ItemStore for minimizer tests.
type testStore struct {
	items []*testItem
}

func (s *testStore) Items() []*testItem {
	items := make([]*testItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *testStore) CreateItem(data testData) *testItem {
	return &testItem{id: data.id, version: data.version}
}

func (s *testStore) UpdateItem(item *testItem, data testData) {
	item.version = data.version
}

func (s *testStore) ApplyItemDiffList(diffs []ItemDiff[*testItem]) {
	for _, diff := range diffs {
		switch d := diff.(type) {
		case SpliceDiff[*testItem]:
			if d.Pos+d.NRemovals > len(s.items) {
				panic("testStore: splice out of range")
			}
			tail := make([]*testItem, len(s.items[d.Pos+d.NRemovals:]))
			copy(tail, s.items[d.Pos+d.NRemovals:])
			s.items = append(s.items[:d.Pos], append(d.Additions, tail...)...)
			for _, item := range d.Additions {
				item.processed = true
			}
		case UpdateDiff:
			if d.Pos+d.NItems > len(s.items) {
				panic("testStore: update out of range")
			}
			for _, item := range s.items[d.Pos : d.Pos+d.NItems] {
				item.processed = true
			}
		}
	}
}

// resetProcessed clears the processed flag on all items.
func (s *testStore) resetProcessed() {
	for _, item := range s.items {
		item.processed = false
	}
}

// ids returns the identity sequence of the store.
func (s *testStore) ids() []string {
	ids := make([]string, len(s.items))
	for i, item := range s.items {
		ids[i] = item.id
	}
	return ids
}

// requireItem asserts one store position's identity, version and processed
// flag.
func requireItem(t *testing.T, item *testItem, id string, version int, processed bool) {
	t.Helper()
	require.Equal(t, id, item.id)
	require.Equal(t, version, item.version)
	require.Equal(t, processed, item.processed)
}

// =============================================================================
// ELIGIBILITY TESTS
// =============================================================================

func TestCanMinimize(t *testing.T) {
	popBack := PopBack[testData]()

	// Empty and single-diff lists cannot be minimized.
	require.False(t, CanMinimize[testData](nil))
	require.False(t, CanMinimize([]Diff[testData]{popBack}))

	// Two supported diffs can.
	require.True(t, CanMinimize([]Diff[testData]{popBack, popBack}))

	// Clear, Truncate and Reset disqualify the whole batch, wherever they
	// appear.
	for _, unsupported := range []Diff[testData]{
		Clear[testData](),
		Truncate[testData](2),
		Reset[testData](),
	} {
		require.False(t, CanMinimize([]Diff[testData]{unsupported, unsupported}), unsupported.Kind.String())
		require.False(t, CanMinimize([]Diff[testData]{popBack, unsupported, popBack}), unsupported.Kind.String())
	}
}

// =============================================================================
// SINGLE DIFF TESTS
// =============================================================================

// TestMinimizeSingleDiffKinds runs one diff of each supported kind through a
// full minimize pass. Single-diff batches are never minimized in production
// (CanMinimize rejects them) but each kind must still simulate correctly.
func TestMinimizeSingleDiffKinds(t *testing.T) {
	store := &testStore{}

	minimize := func(d Diff[testData]) {
		store.resetProcessed()
		NewMinimizer[*testItem, testData](store).Minimize([]Diff[testData]{d})
	}

	// Append.
	minimize(Append(testData{"a", 0}, testData{"b", 0}, testData{"c", 0}))
	require.Len(t, store.items, 3)
	requireItem(t, store.items[0], "a", 0, true)
	requireItem(t, store.items[1], "b", 0, true)
	requireItem(t, store.items[2], "c", 0, true)

	// Pop front.
	minimize(PopFront[testData]())
	require.Len(t, store.items, 2)
	requireItem(t, store.items[0], "b", 0, false)
	requireItem(t, store.items[1], "c", 0, false)

	// Pop back.
	minimize(PopBack[testData]())
	require.Len(t, store.items, 1)
	requireItem(t, store.items[0], "b", 0, false)

	// Push front.
	minimize(PushFront(testData{"a", 1}))
	require.Len(t, store.items, 2)
	requireItem(t, store.items[0], "a", 1, true)
	requireItem(t, store.items[1], "b", 0, false)

	// Push back.
	minimize(PushBack(testData{"d", 0}))
	require.Len(t, store.items, 3)
	requireItem(t, store.items[0], "a", 1, false)
	requireItem(t, store.items[1], "b", 0, false)
	requireItem(t, store.items[2], "d", 0, true)

	// Insert.
	minimize(Insert(2, testData{"c", 1}))
	require.Len(t, store.items, 4)
	requireItem(t, store.items[0], "a", 1, false)
	requireItem(t, store.items[1], "b", 0, false)
	requireItem(t, store.items[2], "c", 1, true)
	requireItem(t, store.items[3], "d", 0, false)

	// Set keeping the identity refreshes the item in place.
	minimize(Set(1, testData{"b", 1}))
	require.Len(t, store.items, 4)
	requireItem(t, store.items[0], "a", 1, false)
	requireItem(t, store.items[1], "b", 1, true)
	requireItem(t, store.items[2], "c", 1, false)
	requireItem(t, store.items[3], "d", 0, false)

	// Set changing the identity replaces the item.
	minimize(Set(1, testData{"b1", 0}))
	require.Len(t, store.items, 4)
	requireItem(t, store.items[0], "a", 1, false)
	requireItem(t, store.items[1], "b1", 0, true)
	requireItem(t, store.items[2], "c", 1, false)
	requireItem(t, store.items[3], "d", 0, false)
}

// =============================================================================
// MINIMIZATION TESTS
// =============================================================================

// TestMinimizeOutOfOrderInsertions checks that a batch of insertions at
// scattered positions collapses into a single splice.
func TestMinimizeOutOfOrderInsertions(t *testing.T) {
	store := &testStore{}
	diffs := []Diff[testData]{
		PushBack(testData{"b", 0}),
		PushBack(testData{"d", 0}),
		PushFront(testData{"a", 0}),
		Insert(2, testData{"c", 0}),
	}
	require.True(t, CanMinimize(diffs))

	m := NewMinimizer[*testItem, testData](store)

	oldItemIDs := m.LoadItems()
	require.Empty(t, oldItemIDs)

	newItemIDs := m.ApplyDiffToItems(oldItemIDs, diffs)
	require.Equal(t, []string{"a", "b", "c", "d"}, newItemIDs)

	itemDiffList := m.ItemDiffList(oldItemIDs, newItemIDs)
	require.Len(t, itemDiffList, 1)
	splice, ok := itemDiffList[0].(SpliceDiff[*testItem])
	require.True(t, ok)
	require.Equal(t, 0, splice.Pos)
	require.Equal(t, 0, splice.NRemovals)
	require.Len(t, splice.Additions, 4)

	store.ApplyItemDiffList(itemDiffList)
	require.Equal(t, []string{"a", "b", "c", "d"}, store.ids())
}

// TestMinimizeOutOfOrderRemovals checks that a batch of removals at
// scattered positions collapses into a single splice.
func TestMinimizeOutOfOrderRemovals(t *testing.T) {
	store := &testStore{}
	NewMinimizer[*testItem, testData](store).Minimize([]Diff[testData]{
		Append(testData{"a", 0}, testData{"b", 0}, testData{"c", 0}, testData{"d", 0}),
	})
	require.Len(t, store.items, 4)

	diffs := []Diff[testData]{
		PopBack[testData](),
		Remove[testData](1),
		PopBack[testData](),
		PopFront[testData](),
	}
	require.True(t, CanMinimize(diffs))

	m := NewMinimizer[*testItem, testData](store)

	oldItemIDs := m.LoadItems()
	require.Equal(t, []string{"a", "b", "c", "d"}, oldItemIDs)

	newItemIDs := m.ApplyDiffToItems(oldItemIDs, diffs)
	require.Empty(t, newItemIDs)

	itemDiffList := m.ItemDiffList(oldItemIDs, newItemIDs)
	require.Len(t, itemDiffList, 1)
	splice, ok := itemDiffList[0].(SpliceDiff[*testItem])
	require.True(t, ok)
	require.Equal(t, 0, splice.Pos)
	require.Equal(t, 4, splice.NRemovals)
	require.Empty(t, splice.Additions)

	store.ApplyItemDiffList(itemDiffList)
	require.Empty(t, store.items)
}

// TestMinimizeMixedBatch checks the run folding on a batch mixing removals,
// insertions and both flavors of set, including a trailing removal.
func TestMinimizeMixedBatch(t *testing.T) {
	store := &testStore{}
	NewMinimizer[*testItem, testData](store).Minimize([]Diff[testData]{
		Append(
			testData{"a", 0}, testData{"c", 0}, testData{"d", 0}, testData{"e", 0},
			testData{"f", 0}, testData{"g", 0}, testData{"h", 0},
		),
	})
	store.resetProcessed()

	diffs := []Diff[testData]{
		Remove[testData](1),
		Insert(1, testData{"b", 0}),
		Insert(2, testData{"c", 1}),
		PopBack[testData](),
		Set(3, testData{"d1", 0}),
		Set(4, testData{"e", 1}),
	}

	m := NewMinimizer[*testItem, testData](store)

	oldItemIDs := m.LoadItems()
	require.Equal(t, []string{"a", "c", "d", "e", "f", "g", "h"}, oldItemIDs)

	newItemIDs := m.ApplyDiffToItems(oldItemIDs, diffs)
	require.Equal(t, []string{"a", "b", "c", "d1", "e", "f", "g"}, newItemIDs)

	itemDiffList := m.ItemDiffList(oldItemIDs, newItemIDs)
	require.Len(t, itemDiffList, 5)

	// Splice in b at 1.
	splice, ok := itemDiffList[0].(SpliceDiff[*testItem])
	require.True(t, ok)
	require.Equal(t, 1, splice.Pos)
	require.Equal(t, 0, splice.NRemovals)
	require.Len(t, splice.Additions, 1)

	// c was refreshed by the reinsertion with new data.
	update, ok := itemDiffList[1].(UpdateDiff)
	require.True(t, ok)
	require.Equal(t, 2, update.Pos)
	require.Equal(t, 1, update.NItems)

	// d replaced by d1.
	splice, ok = itemDiffList[2].(SpliceDiff[*testItem])
	require.True(t, ok)
	require.Equal(t, 3, splice.Pos)
	require.Equal(t, 1, splice.NRemovals)
	require.Len(t, splice.Additions, 1)

	// e refreshed in place.
	update, ok = itemDiffList[3].(UpdateDiff)
	require.True(t, ok)
	require.Equal(t, 4, update.Pos)
	require.Equal(t, 1, update.NItems)

	// Trailing h removed.
	splice, ok = itemDiffList[4].(SpliceDiff[*testItem])
	require.True(t, ok)
	require.Equal(t, 7, splice.Pos)
	require.Equal(t, 1, splice.NRemovals)
	require.Empty(t, splice.Additions)

	store.ApplyItemDiffList(itemDiffList)
	require.Len(t, store.items, 7)
	requireItem(t, store.items[0], "a", 0, false)
	requireItem(t, store.items[1], "b", 0, true)
	requireItem(t, store.items[2], "c", 1, true)
	requireItem(t, store.items[3], "d1", 0, true)
	requireItem(t, store.items[4], "e", 1, true)
	requireItem(t, store.items[5], "f", 0, false)
	requireItem(t, store.items[6], "g", 0, false)
}

// TestItemDiffListNoChange checks that equal sequences produce no
// operations.
func TestItemDiffListNoChange(t *testing.T) {
	store := &testStore{}
	NewMinimizer[*testItem, testData](store).Minimize([]Diff[testData]{
		Append(testData{"a", 0}, testData{"b", 0}, testData{"c", 0}),
	})

	m := NewMinimizer[*testItem, testData](store)
	ids := m.LoadItems()
	require.Empty(t, m.ItemDiffList(ids, ids))
}

// TestSameIdentitySetAlwaysUpdates checks the no-silent-skip policy: a set
// keeping identity emits an update even when the data did not change, and
// adjacent update positions fold into one run.
func TestSameIdentitySetAlwaysUpdates(t *testing.T) {
	store := &testStore{}
	NewMinimizer[*testItem, testData](store).Minimize([]Diff[testData]{
		Append(testData{"a", 0}, testData{"b", 0}, testData{"c", 0}),
	})
	store.resetProcessed()

	diffs := []Diff[testData]{
		Set(0, testData{"a", 0}),
		Set(1, testData{"b", 0}),
	}
	require.True(t, CanMinimize(diffs))

	m := NewMinimizer[*testItem, testData](store)
	oldItemIDs := m.LoadItems()
	newItemIDs := m.ApplyDiffToItems(oldItemIDs, diffs)
	require.Equal(t, oldItemIDs, newItemIDs)

	itemDiffList := m.ItemDiffList(oldItemIDs, newItemIDs)
	require.Len(t, itemDiffList, 1)
	update, ok := itemDiffList[0].(UpdateDiff)
	require.True(t, ok)
	require.Equal(t, 0, update.Pos)
	require.Equal(t, 2, update.NItems)

	store.ApplyItemDiffList(itemDiffList)
	requireItem(t, store.items[0], "a", 0, true)
	requireItem(t, store.items[1], "b", 0, true)
	requireItem(t, store.items[2], "c", 0, false)
}

// TestMinimizeRoundTrip applies a batch and its inverse and checks that the
// store returns to its original identities and data.
func TestMinimizeRoundTrip(t *testing.T) {
	store := &testStore{}
	NewMinimizer[*testItem, testData](store).Minimize([]Diff[testData]{
		Append(testData{"a", 0}, testData{"b", 0}, testData{"c", 0}),
	})

	forward := []Diff[testData]{
		Remove[testData](1),
		Set(1, testData{"c", 1}),
		PushBack(testData{"d", 0}),
	}
	NewMinimizer[*testItem, testData](store).Minimize(forward)
	require.Equal(t, []string{"a", "c", "d"}, store.ids())

	backward := []Diff[testData]{
		PopBack[testData](),
		Set(1, testData{"c", 0}),
		Insert(1, testData{"b", 0}),
	}
	NewMinimizer[*testItem, testData](store).Minimize(backward)

	require.Equal(t, []string{"a", "b", "c"}, store.ids())
	for _, item := range store.items {
		require.Equal(t, 0, item.version)
	}
}

// =============================================================================
// INVARIANT VIOLATION TESTS
// =============================================================================

// TestApplyDiffToItemsPanics checks that malformed batches fail loudly
// instead of corrupting the sequence bookkeeping.
func TestApplyDiffToItemsPanics(t *testing.T) {
	store := &testStore{}
	cases := map[string]Diff[testData]{
		"pop-front on empty":      PopFront[testData](),
		"pop-back on empty":       PopBack[testData](),
		"insert out of range":     Insert(1, testData{"a", 0}),
		"remove out of range":     Remove[testData](0),
		"set out of range":        Set(0, testData{"a", 0}),
		"clear is unsupported":    Clear[testData](),
		"reset is unsupported":    Reset[testData](),
		"truncate is unsupported": Truncate[testData](0),
	}
	for name, diff := range cases {
		t.Run(name, func(t *testing.T) {
			m := NewMinimizer[*testItem, testData](store)
			require.Panics(t, func() {
				m.ApplyDiffToItems(nil, []Diff[testData]{diff})
			})
		})
	}
}
