// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// timeline-tui.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides.
//
// Configuration file locations (in order of precedence):
//   - Path given on the command line
//   - ~/.timeline/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load the effective configuration:
//
//	cfg, err := config.Load("")
//	if err != nil { ... }
package config
