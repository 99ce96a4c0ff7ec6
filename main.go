// timeline-tui - A live room timeline viewer driven by a diff feed.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/timeline-tui/internal/cli"
	"github.com/jeranaias/timeline-tui/internal/feed"
	"github.com/jeranaias/timeline-tui/internal/room"
	"github.com/jeranaias/timeline-tui/internal/storage"
	feedview "github.com/jeranaias/timeline-tui/internal/ui/feed"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdExport:
		if err := cli.HandleExport(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdRooms:
		if err := cli.HandleRooms(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runTUI starts the timeline view: resume the cached timeline, follow the
// feed, and save the result on exit.
func runTUI(args cli.Args) {
	cfg, err := cli.LoadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tl := room.New(cfg.Room)

	// Resume from the cache when enabled. A missing cache entry just means
	// a fresh timeline.
	var cache *storage.Cache
	if cfg.Cache.Enabled {
		cache, err = storage.Open(cfg.Cache.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open cache: %v\n", err)
			os.Exit(1)
		}
		defer cache.Close()

		events, err := cache.LoadTimeline(context.Background(), cfg.Room)
		switch {
		case err == nil:
			tl.Rebuild(events)
		case errors.Is(err, storage.ErrNotCached):
			// Fresh timeline.
		default:
			log.Printf("WARNING: Failed to load cached timeline: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := feed.NewRunner(tl)
	go runner.Run(ctx)

	watcher, err := feed.NewWatcher(cfg.Feed.Path, runner, cfg.Feed.ReplayRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to watch feed: %v\n", err)
		os.Exit(1)
	}
	defer watcher.Close()
	go func() {
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("WARNING: Feed watcher stopped: %v", err)
		}
	}()

	m := feedview.New(tl, runner.Notifications(), cfg.UI)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running timeline-tui: %v\n", err)
		os.Exit(1)
	}

	// Stop feed intake before the final save so the timeline is quiescent.
	cancel()

	if cache != nil {
		if err := cache.SaveTimeline(context.Background(), cfg.Room, tl.Events()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save timeline: %v\n", err)
		}
	}
}
