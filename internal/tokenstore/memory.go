package tokenstore

import (
	"context"
	"maps"
	"sync"

	"oauthrelay/pkg/logging"
)

// MemoryStore provides thread-safe in-memory storage for refresh tokens.
// Records live as long as the process; a restart forgets every tenant.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]string),
	}
}

// Get retrieves the refresh token for tenantID.
func (s *MemoryStore) Get(_ context.Context, tenantID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, exists := s.tokens[tenantID]
	if !exists {
		return "", ErrNotFound
	}
	return token, nil
}

// Set saves the refresh token for tenantID, replacing any previous one.
func (s *MemoryStore) Set(_ context.Context, tenantID, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[tenantID] = refreshToken
	logging.Debug("TokenStore", "Stored refresh token in memory for app=%s (%d apps)", tenantID, len(s.tokens))
	return nil
}

// Snapshot returns a copy of all stored tokens.
func (s *MemoryStore) Snapshot(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.tokens), nil
}
