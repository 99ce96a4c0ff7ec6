// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed delivers timeline diff batches to a room timeline.
package feed

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// =============================================================================
// WATCHER
// =============================================================================

// Watcher tails a JSON-lines feed file and enqueues decoded batches on a
// runner.
//
// Existing content is drained on start, so a replayed history file works
// without any filesystem events. Batches are rate-limited so replaying a
// large history does not flood the timeline's observers.
type Watcher struct {
	path    string
	runner  *Runner
	limiter *rate.Limiter
	fsw     *fsnotify.Watcher

	// offset is how far into the file complete lines have been consumed.
	offset int64
}

// NewWatcher creates a watcher tailing the feed file at path. perSecond
// bounds how many batches are delivered per second; zero or negative means
// unlimited.
func NewWatcher(path string, runner *Runner, perSecond float64) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &Watcher{
		path:    path,
		runner:  runner,
		limiter: rate.NewLimiter(limit, 1),
		fsw:     fsw,
	}, nil
}

// Run drains the existing feed content, then follows the file until the
// context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	// Watch the parent directory so a feed file created later is picked up.
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if err := w.drain(ctx); err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Name != w.path {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				if err := w.drain(ctx); err != nil {
					return err
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("WARNING: feed watcher error: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// drain reads complete lines past the current offset, decodes them and
// enqueues the batches. A trailing partial line stays in the file until the
// writer finishes it.
func (w *Watcher) drain(ctx context.Context) error {
	f, err := os.Open(w.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(w.offset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek feed: %w", err)
	}

	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadBytes('\n')
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read feed: %w", err)
		}
		w.offset += int64(len(line))

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		batch, err := DecodeBatch(line)
		if err != nil {
			// A bad line is a producer bug; skip it rather than wedge the
			// whole feed.
			log.Printf("WARNING: skipping malformed feed line: %v", err)
			continue
		}

		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := w.runner.Enqueue(ctx, batch); err != nil {
			return err
		}
	}
}
