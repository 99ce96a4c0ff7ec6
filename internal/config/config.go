// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// timeline-tui.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrInvalidRoom = errors.New("room name must not be empty")
	ErrInvalidRate = errors.New("replay rate must not be negative")
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete timeline-tui configuration.
type Config struct {
	// Room is the room whose timeline is displayed.
	Room string `toml:"room"`

	// Feed configuration
	Feed FeedConfig `toml:"feed"`

	// Cache configuration
	Cache CacheConfig `toml:"cache"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// FeedConfig contains feed intake configuration.
type FeedConfig struct {
	// Path is the JSON-lines feed file to follow.
	Path string `toml:"path"`
	// ReplayRate bounds how many batches per second are delivered while
	// replaying history (0 = unlimited).
	ReplayRate float64 `toml:"replay_rate"`
}

// CacheConfig contains timeline cache configuration.
type CacheConfig struct {
	// Enabled controls whether timelines are persisted across runs.
	Enabled bool `toml:"enabled"`
	// DatabasePath is where to store the SQLite database.
	DatabasePath string `toml:"database_path"`
}

// UIConfig contains interface configuration.
type UIConfig struct {
	// ShowTimestamps renders a timestamp column next to each event.
	ShowTimestamps bool `toml:"show_timestamps"`
	// RenderMarkdown renders message bodies as markdown.
	RenderMarkdown bool `toml:"render_markdown"`
	// SenderWidth is the width of the sender column, in cells.
	SenderWidth int `toml:"sender_width"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".timeline")
	return Config{
		Room: "#general",
		Feed: FeedConfig{
			Path:       filepath.Join(base, "feed.jsonl"),
			ReplayRate: 0,
		},
		Cache: CacheConfig{
			Enabled:      true,
			DatabasePath: filepath.Join(base, "timelines.db"),
		},
		UI: UIConfig{
			ShowTimestamps: true,
			RenderMarkdown: true,
			SenderWidth:    18,
		},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".timeline", "config.toml")
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the given path, falling back to the
// default location and then to built-in defaults. Environment variables
// override whatever was loaded.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TIMELINE_ROOM"); v != "" {
		cfg.Room = v
	}
	if v := os.Getenv("TIMELINE_FEED"); v != "" {
		cfg.Feed.Path = v
	}
	if v := os.Getenv("TIMELINE_DB"); v != "" {
		cfg.Cache.DatabasePath = v
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Room == "" {
		return ErrInvalidRoom
	}
	if c.Feed.ReplayRate < 0 {
		return ErrInvalidRate
	}
	return nil
}
