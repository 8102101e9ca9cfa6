package tokenstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when no refresh token is stored for a tenant.
	ErrNotFound = errors.New("no refresh token stored")

	// ErrRevisionConflict is returned by Set when the remote document changed
	// between the read and the guarded write.
	ErrRevisionConflict = errors.New("token document revision conflict")
)

// Store persists one refresh token per tenant.
//
// Implementations must be safe for concurrent use. Backends that persist the
// whole mapping as one document (file, github) do a read-modify-write per Set,
// so two concurrent Sets for different tenants can lose an update.
type Store interface {
	// Get returns the refresh token for tenantID or ErrNotFound.
	Get(ctx context.Context, tenantID string) (string, error)

	// Set stores or overwrites the refresh token for tenantID.
	Set(ctx context.Context, tenantID, refreshToken string) error

	// Snapshot returns a copy of the full tenant to refresh token mapping.
	Snapshot(ctx context.Context) (map[string]string, error)
}

// decodeDocument parses the persisted JSON object. Empty input is an empty mapping.
func decodeDocument(data []byte) (map[string]string, error) {
	tokens := make(map[string]string)
	if len(bytes.TrimSpace(data)) == 0 {
		return tokens, nil
	}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("failed to parse token document: %w", err)
	}
	if tokens == nil {
		// "null" decodes to a nil map
		tokens = make(map[string]string)
	}
	return tokens, nil
}

// encodeDocument renders the mapping pretty-printed with a trailing newline.
func encodeDocument(tokens map[string]string) ([]byte, error) {
	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode token document: %w", err)
	}
	return append(data, '\n'), nil
}

