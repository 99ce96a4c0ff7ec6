// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export.go - "export" and "rooms" command handlers, reading the timeline
// cache without starting the TUI.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jeranaias/timeline-tui/internal/config"
	"github.com/jeranaias/timeline-tui/internal/storage"
)

// HandleExport writes a cached room timeline as a JSON snapshot, to the
// --out file or to stdout.
func HandleExport(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	cache, err := storage.Open(cfg.Cache.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer cache.Close()

	events, err := cache.LoadTimeline(context.Background(), cfg.Room)
	if err != nil {
		if errors.Is(err, storage.ErrNotCached) {
			return fmt.Errorf("no cached timeline for %s", cfg.Room)
		}
		return err
	}

	if args.Output != "" {
		return storage.WriteSnapshot(args.Output, cfg.Room, events)
	}

	snap := storage.Snapshot{
		Room:       cfg.Room,
		ExportedAt: time.Now().UTC(),
		Events:     events,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// HandleRooms lists the rooms present in the cache.
func HandleRooms(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	cache, err := storage.Open(cfg.Cache.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer cache.Close()

	rooms, err := cache.Rooms(context.Background())
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		fmt.Println("No cached rooms.")
		return nil
	}
	for _, room := range rooms {
		fmt.Println(room)
	}
	return nil
}

// LoadConfig loads the effective configuration and applies CLI flag
// overrides on top.
func LoadConfig(args Args) (config.Config, error) {
	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if args.Room != "" {
		cfg.Room = args.Room
	}
	if args.Feed != "" {
		cfg.Feed.Path = args.Feed
	}
	if args.Database != "" {
		cfg.Cache.DatabasePath = args.Database
	}
	if args.ReplayRate != "" {
		rate, err := strconv.ParseFloat(args.ReplayRate, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid --replay-rate %q", args.ReplayRate)
		}
		cfg.Feed.ReplayRate = rate
	}
	return cfg, cfg.Validate()
}
