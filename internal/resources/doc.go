// Package resources provides read-only MCP resources describing the
// running service.
package resources
