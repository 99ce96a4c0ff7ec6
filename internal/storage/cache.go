// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides timeline persistence for timeline-tui.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/timeline-tui/internal/model"
	"github.com/jeranaias/timeline-tui/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotCached     = errors.New("timeline not cached")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS timelines (
	room    TEXT NOT NULL,
	pos     INTEGER NOT NULL,
	id      TEXT NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY (room, pos)
);
CREATE INDEX IF NOT EXISTS idx_timelines_room ON timelines(room);
`

// =============================================================================
// CACHE
// =============================================================================

// Cache persists materialized room timelines in a local SQLite database.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the timeline cache at the given path.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to create schema: %v", ErrDatabaseError, err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveTimeline replaces the cached timeline of the given room with events,
// in one transaction.
func (c *Cache) SaveTimeline(ctx context.Context, room string, events []model.Event) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM timelines WHERE room = ?`, room); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO timelines (room, pos, id, payload) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer stmt.Close()

	for pos, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to encode event %s: %w", ev.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, room, pos, ev.ID, string(payload)); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// LoadTimeline returns the cached timeline of the given room, in order.
// Returns ErrNotCached if the room has no cached timeline.
func (c *Cache) LoadTimeline(ctx context.Context, room string) ([]model.Event, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT payload FROM timelines WHERE room = ? ORDER BY pos`, room)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		var ev model.Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("failed to decode cached event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	if len(events) == 0 {
		return nil, ErrNotCached
	}
	return events, nil
}

// Rooms returns the names of all cached rooms.
func (c *Cache) Rooms(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT DISTINCT room FROM timelines ORDER BY room`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var rooms []string
	for rows.Next() {
		var room string
		if err := rows.Scan(&room); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// =============================================================================
// SNAPSHOT EXPORT
// =============================================================================

// Snapshot is a JSON export of one room's timeline.
type Snapshot struct {
	Room       string        `json:"room"`
	ExportedAt time.Time     `json:"exported_at"`
	Events     []model.Event `json:"events"`
}

// WriteSnapshot writes a timeline snapshot to path atomically, so a crash
// mid-export never leaves a truncated file behind.
func WriteSnapshot(path, room string, events []model.Event) error {
	snapshot := Snapshot{
		Room:       room,
		ExportedAt: time.Now(),
		Events:     events,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return util.AtomicWriteFile(path, data, 0644)
}
