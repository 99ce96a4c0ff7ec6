// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for timeline-tui.
package cli

import (
	"fmt"
	"runtime"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdExport
	CmdRooms
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	Room       string
	Feed       string
	Database   string
	ReplayRate string

	// Export-specific
	Output string

	// Parser with the raw arguments, for handlers that need more.
	Parser *ArgParser
}

const usageText = `timeline-tui - a live room timeline viewer

Timeline-tui follows a JSON-lines diff feed, reconciles each batch against
the room timeline with minimal splice/update operations, and renders the
result in the terminal.

Usage:
  timeline-tui                      Follow the configured feed (default)
  timeline-tui export               Export a cached timeline as JSON
  timeline-tui rooms                List rooms present in the cache
  timeline-tui version              Show version information
  timeline-tui help                 Show this help

Flags:
  --config PATH     Config file (default ~/.timeline/config.toml)
  --room NAME       Room to display or export
  --feed PATH       JSON-lines feed file to follow
  --db PATH         SQLite cache database
  --replay-rate N   Max feed batches per second (0 = unlimited)
  --out PATH        Output file for export (default stdout)

Environment:
  TIMELINE_ROOM, TIMELINE_FEED, TIMELINE_DB override the config file.
`

// Parse parses os-style arguments (without the program name) into a command
// and its arguments.
func Parse(raw []string) (Command, Args) {
	parser := NewArgParser(raw)
	args := Args{
		ConfigPath: parser.Flag("config"),
		Room:       parser.Flag("room"),
		Feed:       parser.Flag("feed"),
		Database:   parser.Flag("db"),
		ReplayRate: parser.Flag("replay-rate"),
		Output:     parser.Flag("out"),
		Parser:     parser,
	}

	if parser.BoolFlag("help") || parser.BoolFlag("h") {
		return CmdHelp, args
	}
	if parser.BoolFlag("version") || parser.BoolFlag("v") {
		return CmdVersion, args
	}

	switch parser.Subcommand() {
	case "":
		return CmdTUI, args
	case "export":
		return CmdExport, args
	case "rooms":
		return CmdRooms, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		fmt.Printf("Unknown command: %s\n\n", parser.Subcommand())
		return CmdHelp, args
	}
}

// HandleHelp prints usage information.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("timeline-tui %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
