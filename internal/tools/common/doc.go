// Package common provides argument parsing and instrumentation shared by the
// MCP tool packages.
package common
