package google

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// ErrTokenNotFound is returned by TokenStore.Get when no token is stored for the user.
var ErrTokenNotFound = errors.New("no token stored for user")

// TokenStore keeps the OAuth tokens of authenticated users, keyed by Google user id.
type TokenStore interface {
	// Put stores token for userID, replacing any previous token.
	Put(ctx context.Context, userID string, token *oauth2.Token) error

	// Get returns the token for userID or ErrTokenNotFound.
	Get(ctx context.Context, userID string) (*oauth2.Token, error)
}

// MemoryTokenStore is a process-local TokenStore. Tokens are lost on restart.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]*oauth2.Token
}

// NewMemoryTokenStore creates an empty MemoryTokenStore.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]*oauth2.Token),
	}
}

// Put stores a copy of token. The last writer for a user wins.
func (s *MemoryTokenStore) Put(_ context.Context, userID string, token *oauth2.Token) error {
	if userID == "" {
		return errors.New("user id is required")
	}
	if token == nil {
		return errors.New("token is required")
	}

	stored := *token

	s.mu.Lock()
	s.tokens[userID] = &stored
	s.mu.Unlock()

	return nil
}

// Get returns a copy of the stored token.
func (s *MemoryTokenStore) Get(_ context.Context, userID string) (*oauth2.Token, error) {
	s.mu.RLock()
	token, ok := s.tokens[userID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrTokenNotFound
	}

	copied := *token
	return &copied, nil
}

// Len returns the number of users with a stored token.
func (s *MemoryTokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
