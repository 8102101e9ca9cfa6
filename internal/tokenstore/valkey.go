package tokenstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"oauthrelay/pkg/logging"
)

// ValkeyOptions configures a ValkeyStore.
type ValkeyOptions struct {
	Address  string
	Password string
	DB       int

	// Key is the hash holding one field per tenant.
	Key string
}

// ValkeyStore keeps refresh tokens as fields of a single Valkey hash. Each Set
// touches only its own field, so concurrent Sets for different tenants do not
// overwrite each other.
type ValkeyStore struct {
	client valkey.Client
	key    string
}

// NewValkeyStore connects to Valkey. The connection is established eagerly so
// a misconfigured address fails at startup rather than on the first callback.
func NewValkeyStore(opts ValkeyOptions) (*ValkeyStore, error) {
	if opts.Address == "" || opts.Key == "" {
		return nil, fmt.Errorf("valkey store requires address and key")
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{opts.Address},
		Password:     opts.Password,
		SelectDB:     opts.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey at %s: %w", opts.Address, err)
	}

	return &ValkeyStore{client: client, key: opts.Key}, nil
}

// Get retrieves the refresh token for tenantID.
func (s *ValkeyStore) Get(ctx context.Context, tenantID string) (string, error) {
	token, err := s.client.Do(ctx, s.client.B().Hget().Key(s.key).Field(tenantID).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("valkey HGET %s failed: %w", s.key, err)
	}
	return token, nil
}

// Set stores the refresh token for tenantID.
func (s *ValkeyStore) Set(ctx context.Context, tenantID, refreshToken string) error {
	cmd := s.client.B().Hset().Key(s.key).FieldValue().FieldValue(tenantID, refreshToken).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey HSET %s failed: %w", s.key, err)
	}
	logging.Debug("TokenStore", "Stored refresh token for app=%s in valkey hash %s", tenantID, s.key)
	return nil
}

// Snapshot returns all fields of the hash.
func (s *ValkeyStore) Snapshot(ctx context.Context) (map[string]string, error) {
	tokens, err := s.client.Do(ctx, s.client.B().Hgetall().Key(s.key).Build()).AsStrMap()
	if err != nil {
		return nil, fmt.Errorf("valkey HGETALL %s failed: %w", s.key, err)
	}
	if tokens == nil {
		tokens = make(map[string]string)
	}
	return tokens, nil
}

// Close releases the connection pool.
func (s *ValkeyStore) Close() error {
	s.client.Close()
	return nil
}
