// Package invite_tools exposes login and event creation as MCP tools.
//
// Tools:
//   - google_auth_url: consent URL for a new login
//   - calendar_create_event: same contract as POST /create, attendees comma separated
package invite_tools
