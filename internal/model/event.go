// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for timeline events.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// EVENT KIND
// =============================================================================

// EventKind represents the kind of a timeline event.
type EventKind string

const (
	// EventMessage is a regular chat message.
	EventMessage EventKind = "message"
	// EventNotice is an automated or informational message.
	EventNotice EventKind = "notice"
	// EventMembership is a join/leave/rename state change.
	EventMembership EventKind = "membership"
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	return string(k)
}

// =============================================================================
// EVENT
// =============================================================================

// Event is a single timeline event as delivered by a feed.
//
// ID is the stable identity of the logical event: an edit arrives as a new
// Event value with the same ID and a bumped Edition, and the timeline
// refreshes the existing entry in place instead of recreating it.
type Event struct {
	// Identity
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Body string `json:"body"`

	// Edition counts content revisions of the same logical event.
	Edition int `json:"edition,omitempty"`
}

// TimelineID returns the stable identity key of the event.
func (e Event) TimelineID() string {
	return e.ID
}

// NewMessage creates a message event with a generated ID.
func NewMessage(sender, body string) Event {
	return newEvent(EventMessage, sender, body)
}

// NewNotice creates a notice event with a generated ID.
func NewNotice(sender, body string) Event {
	return newEvent(EventNotice, sender, body)
}

// NewMembership creates a membership event with a generated ID.
func NewMembership(sender, body string) Event {
	return newEvent(EventMembership, sender, body)
}

func newEvent(kind EventKind, sender, body string) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Sender:    sender,
		Timestamp: time.Now(),
		Body:      body,
	}
}

// Edited returns a copy of the event with new body content and a bumped
// edition, keeping the identity.
func (e Event) Edited(body string) Event {
	e.Body = body
	e.Edition++
	return e
}
