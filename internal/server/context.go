package server

import (
	"sync"
)

// TokenCounter reports how many users currently hold a stored token.
type TokenCounter interface {
	Len() int
}

// ServerContext holds process-wide state shared by the health probes and
// MCP resources.
type ServerContext struct {
	tokens   TokenCounter
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a server context. tokens may be nil.
func NewServerContext(tokens TokenCounter) *ServerContext {
	return &ServerContext{tokens: tokens}
}

// AuthorizedUsers returns the number of users with a stored token, or -1 if unknown.
func (sc *ServerContext) AuthorizedUsers() int {
	if sc.tokens == nil {
		return -1
	}
	return sc.tokens.Len()
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown marks the server as shutting down. It is idempotent.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.shutdown = true
	return nil
}
