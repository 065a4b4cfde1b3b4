// Package server exposes the invitation service over HTTP.
//
// Routes:
//   - GET /google: redirect to the Google consent screen
//   - GET /google/redirect: complete the login and store the user's token
//   - POST /create: create an event with a Meet link and email the attendees
//   - GET /healthz, /readyz, /healthz/detailed: probes
//   - /mcp: optional MCP endpoint
//
// Service errors are translated to responses in one table, see TranslateError.
// MetricsServer serves /metrics on a separate port.
package server
