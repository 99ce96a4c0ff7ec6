// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed delivers timeline diff batches to a room timeline.
package feed

import (
	"context"
	"log"

	"github.com/jeranaias/timeline-tui/internal/model"
	"github.com/jeranaias/timeline-tui/internal/room"
	"github.com/jeranaias/timeline-tui/internal/timeline"
)

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// Notification reports one applied batch.
type Notification struct {
	// Ops is the number of diffs in the batch.
	Ops int
	// Minimized reports whether the batch went through the minimizer.
	Minimized bool
	// Len is the timeline length after applying the batch.
	Len int
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner is the single consumer of diff batches for one timeline.
//
// Batches are applied strictly one at a time, in arrival order; the
// minimizer is not re-entrant against concurrent mutation of its store, so
// the runner is the timeline's only writer.
type Runner struct {
	tl      *room.Timeline
	batches chan []timeline.Diff[model.Event]
	notifs  chan Notification
}

// NewRunner creates a runner bound to the given timeline.
func NewRunner(tl *room.Timeline) *Runner {
	return &Runner{
		tl:      tl,
		batches: make(chan []timeline.Diff[model.Event], 16),
		notifs:  make(chan Notification, 100),
	}
}

// Enqueue queues one batch for application. Blocks while the queue is full
// until the context is canceled.
func (r *Runner) Enqueue(ctx context.Context, batch []timeline.Diff[model.Event]) error {
	select {
	case r.batches <- batch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run consumes and applies batches until the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	for {
		select {
		case batch := <-r.batches:
			r.apply(batch)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Notifications returns the channel of applied-batch notifications.
func (r *Runner) Notifications() <-chan Notification {
	return r.notifs
}

// apply applies one batch and notifies listeners.
func (r *Runner) apply(batch []timeline.Diff[model.Event]) {
	if len(batch) == 0 {
		return
	}
	minimized := timeline.CanMinimize(batch)
	r.tl.Apply(batch)

	notification := Notification{
		Ops:       len(batch),
		Minimized: minimized,
		Len:       r.tl.Len(),
	}
	select {
	case r.notifs <- notification:
	default:
		// Channel full, drop the notification rather than stall the feed.
		log.Printf("WARNING: Notification channel full, dropped notification for batch of %d ops", len(batch))
	}
}
