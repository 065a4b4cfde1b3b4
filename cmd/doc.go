// Package cmd implements the command-line interface for meetinvite.
//
// This package provides the following commands:
//   - serve: Start the HTTP service (login, event creation, health, optional MCP)
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for the MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
