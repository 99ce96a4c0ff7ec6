// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package room provides the materialized timeline of a chat room.
package room

import (
	"fmt"

	"github.com/jeranaias/timeline-tui/internal/model"
	"github.com/jeranaias/timeline-tui/internal/timeline"
)

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one materialized timeline item. The entry is kept alive and
// reused for as long as its identity stays in the timeline, so observers
// holding a reference (a rendered row, a selection) survive content edits.
type Entry struct {
	id       string
	event    model.Event
	revision int
}

// TimelineID returns the stable identity key of the entry.
func (e *Entry) TimelineID() string {
	return e.id
}

// Event returns the current event payload of the entry.
func (e *Entry) Event() model.Event {
	return e.event
}

// Revision returns how many times the entry content was refreshed in place.
func (e *Entry) Revision() int {
	return e.revision
}

// =============================================================================
// TIMELINE
// =============================================================================

// Timeline is the ordered, identity-keyed entry list of one room.
//
// It implements timeline.ItemStore, so eligible diff batches are applied
// through the minimizer. Not safe for concurrent use: the feed runner is the
// sole writer, per the single-owner rule of the minimizer.
type Timeline struct {
	name    string
	entries []*Entry

	// Observers; each is invoked once per structural change.
	onSplice func(pos, nRemovals int, additions []*Entry)
	onUpdate func(pos, nItems int)
	onReset  func()
}

// New creates an empty timeline for the named room.
func New(name string) *Timeline {
	return &Timeline{name: name}
}

// Name returns the room name.
func (t *Timeline) Name() string {
	return t.name
}

// Len returns the number of entries.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Entry returns the entry at position i.
func (t *Timeline) Entry(i int) *Entry {
	return t.entries[i]
}

// Events returns the event payloads of all entries, in order.
func (t *Timeline) Events() []model.Event {
	events := make([]model.Event, len(t.entries))
	for i, e := range t.entries {
		events[i] = e.event
	}
	return events
}

// =============================================================================
// OBSERVERS
// =============================================================================

// OnSplice registers the observer for structural changes: nRemovals entries
// removed at pos, additions inserted in their place.
func (t *Timeline) OnSplice(fn func(pos, nRemovals int, additions []*Entry)) {
	t.onSplice = fn
}

// OnUpdate registers the observer for in-place content refreshes of nItems
// entries starting at pos.
func (t *Timeline) OnUpdate(fn func(pos, nItems int)) {
	t.onUpdate = fn
}

// OnReset registers the observer for full rebuilds of the timeline.
func (t *Timeline) OnReset(fn func()) {
	t.onReset = fn
}

func (t *Timeline) notifySplice(pos, nRemovals int, additions []*Entry) {
	if t.onSplice != nil {
		t.onSplice(pos, nRemovals, additions)
	}
}

func (t *Timeline) notifyUpdate(pos, nItems int) {
	if t.onUpdate != nil {
		t.onUpdate(pos, nItems)
	}
}

func (t *Timeline) notifyReset() {
	if t.onReset != nil {
		t.onReset()
	}
}

// =============================================================================
// ITEM STORE CONTRACT
// =============================================================================

// Items returns the current materialized entries, in order.
func (t *Timeline) Items() []*Entry {
	items := make([]*Entry, len(t.entries))
	copy(items, t.entries)
	return items
}

// CreateItem constructs a new entry for an event not currently in the
// timeline.
func (t *Timeline) CreateItem(data model.Event) *Entry {
	return &Entry{id: data.TimelineID(), event: data}
}

// UpdateItem refreshes an existing entry's content from a new revision of
// the same event.
func (t *Timeline) UpdateItem(item *Entry, data model.Event) {
	item.event = data
	item.revision++
}

// ApplyItemDiffList applies a minimized diff list, in order, notifying the
// observers once per operation.
//
// Positions are relative to the progressively-updated list; an out-of-range
// position means the timeline was mutated outside the minimize pass and is
// a fatal invariant violation.
func (t *Timeline) ApplyItemDiffList(diffs []timeline.ItemDiff[*Entry]) {
	for _, diff := range diffs {
		switch d := diff.(type) {
		case timeline.SpliceDiff[*Entry]:
			t.splice(d.Pos, d.NRemovals, d.Additions)
		case timeline.UpdateDiff:
			if d.Pos+d.NItems > len(t.entries) {
				panic(fmt.Sprintf("room: update [%d, %d) out of range for %d entries", d.Pos, d.Pos+d.NItems, len(t.entries)))
			}
			// Entry content was already refreshed during the minimize pass;
			// only the observers need to hear about it.
			t.notifyUpdate(d.Pos, d.NItems)
		default:
			panic(fmt.Sprintf("room: unknown item diff %T", diff))
		}
	}
}

// splice removes nRemovals entries at pos, inserts additions in their place
// and notifies the observers as one atomic change.
func (t *Timeline) splice(pos, nRemovals int, additions []*Entry) {
	if pos < 0 || pos+nRemovals > len(t.entries) {
		panic(fmt.Sprintf("room: splice [%d, %d) out of range for %d entries", pos, pos+nRemovals, len(t.entries)))
	}
	rest := t.entries[pos+nRemovals:]
	entries := make([]*Entry, 0, len(t.entries)-nRemovals+len(additions))
	entries = append(entries, t.entries[:pos]...)
	entries = append(entries, additions...)
	entries = append(entries, rest...)
	t.entries = entries

	t.notifySplice(pos, nRemovals, additions)
}

// =============================================================================
// BATCH APPLICATION
// =============================================================================

// Apply applies one feed batch to the timeline.
//
// Batches that pass timeline.CanMinimize go through the minimizer and reach
// the observers as a handful of collapsed operations. Everything else takes
// a fallback: single supported diffs are applied naively, and Clear,
// Truncate and Reset are materialized directly.
func (t *Timeline) Apply(diffs []timeline.Diff[model.Event]) {
	if timeline.CanMinimize(diffs) {
		timeline.NewMinimizer[*Entry, model.Event](t).Minimize(diffs)
		return
	}
	for _, d := range diffs {
		t.applyOne(d)
	}
}

// applyOne applies a single diff without minimization.
func (t *Timeline) applyOne(d timeline.Diff[model.Event]) {
	switch d.Kind {
	case timeline.DiffAppend:
		t.splice(len(t.entries), 0, t.materialize(d.Values))
	case timeline.DiffPushFront:
		t.splice(0, 0, t.materialize([]model.Event{d.Value}))
	case timeline.DiffPushBack:
		t.splice(len(t.entries), 0, t.materialize([]model.Event{d.Value}))
	case timeline.DiffPopFront:
		t.splice(0, 1, nil)
	case timeline.DiffPopBack:
		t.splice(len(t.entries)-1, 1, nil)
	case timeline.DiffInsert:
		t.splice(d.Index, 0, t.materialize([]model.Event{d.Value}))
	case timeline.DiffRemove:
		t.splice(d.Index, 1, nil)
	case timeline.DiffSet:
		if d.Index < 0 || d.Index >= len(t.entries) {
			panic(fmt.Sprintf("room: set index %d out of range for %d entries", d.Index, len(t.entries)))
		}
		if entry := t.entries[d.Index]; entry.id == d.Value.TimelineID() {
			// Same identity: refresh in place, keep the entry.
			t.UpdateItem(entry, d.Value)
			t.notifyUpdate(d.Index, 1)
		} else {
			t.splice(d.Index, 1, t.materialize([]model.Event{d.Value}))
		}
	case timeline.DiffClear:
		t.entries = nil
		t.notifyReset()
	case timeline.DiffTruncate:
		if d.Length < 0 || d.Length > len(t.entries) {
			panic(fmt.Sprintf("room: truncate to %d out of range for %d entries", d.Length, len(t.entries)))
		}
		t.splice(d.Length, len(t.entries)-d.Length, nil)
	case timeline.DiffReset:
		t.Rebuild(d.Values)
	default:
		panic(fmt.Sprintf("room: unknown diff kind %s", d.Kind))
	}
}

// materialize creates or refreshes one entry per event, in order.
func (t *Timeline) materialize(events []model.Event) []*Entry {
	entries := make([]*Entry, len(events))
	for i, ev := range events {
		if existing := t.findEntry(ev.TimelineID()); existing != nil {
			t.UpdateItem(existing, ev)
			entries[i] = existing
		} else {
			entries[i] = t.CreateItem(ev)
		}
	}
	return entries
}

// findEntry returns the entry with the given identity, or nil.
func (t *Timeline) findEntry(id string) *Entry {
	for _, e := range t.entries {
		if e.id == id {
			return e
		}
	}
	return nil
}

// Rebuild replaces the whole timeline with the given events, reusing
// entries whose identity survives so observer-held references stay valid.
// Observers get a single reset notification.
func (t *Timeline) Rebuild(events []model.Event) {
	entries := make([]*Entry, len(events))
	for i, ev := range events {
		if existing := t.findEntry(ev.TimelineID()); existing != nil {
			if existing.event != ev {
				t.UpdateItem(existing, ev)
			}
			entries[i] = existing
		} else {
			entries[i] = t.CreateItem(ev)
		}
	}
	t.entries = entries

	t.notifyReset()
}
