package tokenstore

import (
	"context"
	"errors"
	"io"

	"oauthrelay/internal/metrics"
	"oauthrelay/pkg/logging"
)

// instrumentedStore records metrics and logs failures for any backend.
type instrumentedStore struct {
	backend string
	next    Store
}

// Instrument wraps s so that every operation is counted under the given
// backend label. Close is forwarded when s implements io.Closer.
func Instrument(backend string, s Store) Store {
	return &instrumentedStore{backend: backend, next: s}
}

func (s *instrumentedStore) Get(ctx context.Context, tenantID string) (string, error) {
	token, err := s.next.Get(ctx, tenantID)
	switch {
	case err == nil:
		s.observe("get", metrics.OutcomeSuccess)
	case errors.Is(err, ErrNotFound):
		s.observe("get", metrics.OutcomeMiss)
	default:
		s.observe("get", metrics.OutcomeError)
		logging.Error("TokenStore", err, "Failed to read refresh token for app=%s from %s store", tenantID, s.backend)
	}
	return token, err
}

func (s *instrumentedStore) Set(ctx context.Context, tenantID, refreshToken string) error {
	err := s.next.Set(ctx, tenantID, refreshToken)
	if err != nil {
		s.observe("set", metrics.OutcomeError)
		logging.Error("TokenStore", err, "Failed to store refresh token for app=%s in %s store", tenantID, s.backend)
		return err
	}
	s.observe("set", metrics.OutcomeSuccess)
	return nil
}

func (s *instrumentedStore) Snapshot(ctx context.Context) (map[string]string, error) {
	tokens, err := s.next.Snapshot(ctx)
	if err != nil {
		s.observe("snapshot", metrics.OutcomeError)
		return nil, err
	}
	s.observe("snapshot", metrics.OutcomeSuccess)
	return tokens, nil
}

func (s *instrumentedStore) Close() error {
	if c, ok := s.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *instrumentedStore) observe(operation, outcome string) {
	metrics.StoreOperations.WithLabelValues(s.backend, operation, outcome).Inc()
}
