// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline provides diff minimization for ordered, identity-keyed
// item lists.
package timeline

import "fmt"

// =============================================================================
// MINIMIZER
// =============================================================================

// Minimizer collapses a list of sequence diffs into a minimal list of
// splice and update operations and applies it to its store.
//
// A minimizer is scoped to one pass: construct it, call Minimize, discard
// it. It is not safe for concurrent use and must not outlive mutations of
// the store made through any other path.
//
// Clear, Truncate and Reset diffs are not supported; gate every batch with
// CanMinimize first.
type Minimizer[I Item, D Data] struct {
	store ItemStore[I, D]

	// itemMap tracks every item seen during the pass, keyed by identity.
	itemMap map[string]I

	// updatedIDs records identities whose item content was refreshed while
	// simulating the batch, so the diff computation can emit update runs.
	updatedIDs map[string]bool
}

// NewMinimizer creates a minimizer bound to the given store.
func NewMinimizer[I Item, D Data](store ItemStore[I, D]) *Minimizer[I, D] {
	return &Minimizer[I, D]{
		store:      store,
		itemMap:    make(map[string]I),
		updatedIDs: make(map[string]bool),
	}
}

// Minimize runs the full pass against the bound store: load the current
// identity sequence, simulate the batch, compute the minimal diff list and
// have the store materialize it.
//
// Panics if the diff list contains unsupported kinds or an index that is
// out of range for the simulated sequence; neither happens for well-formed
// batches accepted by CanMinimize.
func (m *Minimizer[I, D]) Minimize(diffs []Diff[D]) {
	oldItemIDs := m.LoadItems()
	newItemIDs := m.ApplyDiffToItems(oldItemIDs, diffs)
	itemDiffList := m.ItemDiffList(oldItemIDs, newItemIDs)
	m.store.ApplyItemDiffList(itemDiffList)
}

// =============================================================================
// IDENTITY SEQUENCE SIMULATION
// =============================================================================

// LoadItems loads the items from the store and returns their identities,
// in order.
func (m *Minimizer[I, D]) LoadItems() []string {
	items := m.store.Items()
	itemIDs := make([]string, len(items))
	for i, item := range items {
		id := item.TimelineID()
		itemIDs[i] = id
		m.itemMap[id] = item
	}
	return itemIDs
}

// updateOrCreateItem updates or creates the item for the given data and
// returns its identity.
//
// An identity already seen in this pass means the same logical item
// reappeared with new data, so its item is refreshed in place and marked as
// updated. The refresh is unconditional: consumers may rely on the update
// notification even when the new data compares equal.
func (m *Minimizer[I, D]) updateOrCreateItem(data D) string {
	id := data.TimelineID()
	if item, ok := m.itemMap[id]; ok {
		m.store.UpdateItem(item, data)
		m.updatedIDs[id] = true
	} else {
		m.itemMap[id] = m.store.CreateItem(data)
	}
	return id
}

// ApplyDiffToItems applies the diffs to a copy of the given identity
// sequence and returns the resulting sequence.
//
// Panics on a malformed batch: an out-of-range index, a pop on an empty
// sequence, or an unsupported kind. Such a batch signals a bug in the diff
// producer, not a runtime condition to recover from.
func (m *Minimizer[I, D]) ApplyDiffToItems(itemIDs []string, diffs []Diff[D]) []string {
	newItemIDs := make([]string, len(itemIDs), len(itemIDs)+len(diffs))
	copy(newItemIDs, itemIDs)

	for _, d := range diffs {
		switch d.Kind {
		case DiffAppend:
			for _, data := range d.Values {
				newItemIDs = append(newItemIDs, m.updateOrCreateItem(data))
			}
		case DiffPushFront:
			id := m.updateOrCreateItem(d.Value)
			newItemIDs = append([]string{id}, newItemIDs...)
		case DiffPushBack:
			newItemIDs = append(newItemIDs, m.updateOrCreateItem(d.Value))
		case DiffPopFront:
			if len(newItemIDs) == 0 {
				panic("timeline: pop-front on empty sequence")
			}
			newItemIDs = newItemIDs[1:]
		case DiffPopBack:
			if len(newItemIDs) == 0 {
				panic("timeline: pop-back on empty sequence")
			}
			newItemIDs = newItemIDs[:len(newItemIDs)-1]
		case DiffInsert:
			if d.Index < 0 || d.Index > len(newItemIDs) {
				panic(fmt.Sprintf("timeline: insert index %d out of range for length %d", d.Index, len(newItemIDs)))
			}
			id := m.updateOrCreateItem(d.Value)
			newItemIDs = append(newItemIDs, "")
			copy(newItemIDs[d.Index+1:], newItemIDs[d.Index:])
			newItemIDs[d.Index] = id
		case DiffRemove:
			if d.Index < 0 || d.Index >= len(newItemIDs) {
				panic(fmt.Sprintf("timeline: remove index %d out of range for length %d", d.Index, len(newItemIDs)))
			}
			newItemIDs = append(newItemIDs[:d.Index], newItemIDs[d.Index+1:]...)
		case DiffSet:
			if d.Index < 0 || d.Index >= len(newItemIDs) {
				panic(fmt.Sprintf("timeline: set index %d out of range for length %d", d.Index, len(newItemIDs)))
			}
			newItemIDs[d.Index] = m.updateOrCreateItem(d.Value)
		default:
			panic(fmt.Sprintf("timeline: cannot minimize %s diff", d.Kind))
		}
	}

	return newItemIDs
}

// =============================================================================
// MINIMAL DIFF COMPUTATION
// =============================================================================

// ItemDiffList computes the minimal list of item diffs transforming the old
// identity sequence into the new one.
//
// Contiguous removed-then-added runs collapse into one splice; contiguous
// refreshed positions collapse into one update. Splice and update runs never
// merge into each other. Positions are relative to the progressively-updated
// sequence, so the operations must be applied in order.
func (m *Minimizer[I, D]) ItemDiffList(oldItemIDs, newItemIDs []string) []ItemDiff[I] {
	var itemDiffList []ItemDiff[I]
	pos := 0
	// Pending runs, grouped until a boundary closes them.
	nRemovals := 0
	var additions []I
	nUpdates := 0

	for _, result := range diffSlices(oldItemIDs, newItemIDs) {
		switch result.kind {
		case diffLeft:
			if len(additions) > 0 {
				itemDiffList = append(itemDiffList, SpliceDiff[I]{Pos: pos, Additions: additions})
				pos += len(additions)
				additions = nil
			} else if nUpdates > 0 {
				itemDiffList = append(itemDiffList, UpdateDiff{Pos: pos, NItems: nUpdates})
				pos += nUpdates
				nUpdates = 0
			}
			nRemovals++

		case diffBoth:
			if len(additions) > 0 || nRemovals > 0 {
				itemDiffList = append(itemDiffList, SpliceDiff[I]{Pos: pos, NRemovals: nRemovals, Additions: additions})
				pos += len(additions)
				nRemovals = 0
				additions = nil
			}

			if m.updatedIDs[result.id] {
				nUpdates++
			} else {
				if nUpdates > 0 {
					itemDiffList = append(itemDiffList, UpdateDiff{Pos: pos, NItems: nUpdates})
					pos += nUpdates
					nUpdates = 0
				}
				pos++
			}

		case diffRight:
			if nUpdates > 0 {
				itemDiffList = append(itemDiffList, UpdateDiff{Pos: pos, NItems: nUpdates})
				pos += nUpdates
				nUpdates = 0
			}

			item, ok := m.itemMap[result.id]
			if !ok {
				panic(fmt.Sprintf("timeline: item %q missing from item map", result.id))
			}
			additions = append(additions, item)
		}
	}

	// Close the runs left open at the end of the scan.
	if len(additions) > 0 || nRemovals > 0 {
		itemDiffList = append(itemDiffList, SpliceDiff[I]{Pos: pos, NRemovals: nRemovals, Additions: additions})
	} else if nUpdates > 0 {
		itemDiffList = append(itemDiffList, UpdateDiff{Pos: pos, NItems: nUpdates})
	}

	return itemDiffList
}
