package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"oauthrelay/pkg/logging"
)

// FileStore keeps the tenant mapping as one pretty-printed JSON document on
// the local filesystem. Every Get and Set reads the whole document; Set then
// writes the whole document back.
//
// There is no file locking. Two processes (or two concurrent Sets) can race
// and the later write wins.
//
// SECURITY: the document is written with 0600 permissions and its parent
// directory, when created, with 0700. Token values are never logged.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path. The file is created on
// the first Set; a missing file reads as an empty mapping.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the token document.
func (s *FileStore) Path() string {
	return s.path
}

// Get retrieves the refresh token for tenantID.
func (s *FileStore) Get(_ context.Context, tenantID string) (string, error) {
	tokens, err := s.load()
	if err != nil {
		return "", err
	}
	token, ok := tokens[tenantID]
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

// Set loads the document, replaces the entry for tenantID and persists the
// document again.
func (s *FileStore) Set(_ context.Context, tenantID, refreshToken string) error {
	tokens, err := s.load()
	if err != nil {
		return err
	}
	tokens[tenantID] = refreshToken
	if err := s.save(tokens); err != nil {
		return err
	}
	logging.Debug("TokenStore", "Stored refresh token for app=%s in %s", tenantID, s.path)
	return nil
}

// Snapshot returns the full mapping as currently persisted.
func (s *FileStore) Snapshot(_ context.Context) (map[string]string, error) {
	return s.load()
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read token file %s: %w", s.path, err)
	}
	tokens, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("token file %s: %w", s.path, err)
	}
	return tokens, nil
}

func (s *FileStore) save(tokens map[string]string) error {
	data, err := encodeDocument(tokens)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create token directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", s.path, err)
	}
	return nil
}
