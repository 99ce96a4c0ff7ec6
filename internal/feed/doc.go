// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed delivers timeline diff batches to a room timeline.
//
// A feed is a JSON-lines file: every line is one diff, or a batch object
// grouping several diffs that must be applied together. The Watcher tails
// the file and decodes lines into batches; the Runner consumes batches one
// at a time and applies each to its timeline, so the timeline only ever has
// a single writer.
//
// # Key Types
//
//   - Runner: Single-consumer batch queue bound to one timeline
//   - Watcher: Tails a feed file, decoding lines into batches
//   - Notification: Emitted by the runner after each applied batch
//
// # Usage
//
// Wire a watcher to a runner and start both:
//
//	runner := feed.NewRunner(tl)
//	watcher, err := feed.NewWatcher(cfg.Feed.Path, runner, cfg.Feed.ReplayRate)
//	go runner.Run(ctx)
//	go watcher.Run(ctx)
package feed
