// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI command
// handlers for timeline-tui.
//
// The default command starts the TUI; "export" and "rooms" read the
// timeline cache directly and print to stdout.
//
// # Key Types
//
//   - Command: which command was requested
//   - Args: parsed flags shared by all commands
//   - ArgParser: low-level flag/positional parsing
//
// # Usage
//
//	cmd, args := cli.Parse(os.Args[1:])
//	switch cmd {
//	case cli.CmdExport:
//	    err := cli.HandleExport(args)
//	    ...
//	}
package cli
