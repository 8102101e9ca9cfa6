package tokenstore

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oauthrelay/internal/metrics"
)

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) (string, error)          { return "", f.err }
func (f failingStore) Set(context.Context, string, string) error            { return f.err }
func (f failingStore) Snapshot(context.Context) (map[string]string, error) { return nil, f.err }

type closingStore struct {
	*MemoryStore
	closed bool
}

func (c *closingStore) Close() error {
	c.closed = true
	return nil
}

func TestInstrument_CountsOutcomes(t *testing.T) {
	const backend = "test-instrument"
	s := Instrument(backend, NewMemoryStore())
	ctx := context.Background()

	counter := func(op, outcome string) float64 {
		return testutil.ToFloat64(metrics.StoreOperations.WithLabelValues(backend, op, outcome))
	}
	beforeMiss := counter("get", metrics.OutcomeMiss)
	beforeSet := counter("set", metrics.OutcomeSuccess)
	beforeGet := counter("get", metrics.OutcomeSuccess)

	_, err := s.Get(ctx, "app1")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Set(ctx, "app1", "rt"))
	_, err = s.Get(ctx, "app1")
	require.NoError(t, err)

	assert.Equal(t, beforeMiss+1, counter("get", metrics.OutcomeMiss))
	assert.Equal(t, beforeSet+1, counter("set", metrics.OutcomeSuccess))
	assert.Equal(t, beforeGet+1, counter("get", metrics.OutcomeSuccess))
}

func TestInstrument_PropagatesErrors(t *testing.T) {
	const backend = "test-failing"
	boom := errors.New("boom")
	s := Instrument(backend, failingStore{err: boom})
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues(backend, "set", metrics.OutcomeError))

	_, err := s.Get(ctx, "app1")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Set(ctx, "app1", "rt"), boom)
	_, err = s.Snapshot(ctx)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues(backend, "set", metrics.OutcomeError)))
}

func TestInstrument_ForwardsClose(t *testing.T) {
	inner := &closingStore{MemoryStore: NewMemoryStore()}
	s := Instrument("memory", inner)

	closer, ok := s.(interface{ Close() error })
	require.True(t, ok)
	require.NoError(t, closer.Close())
	assert.True(t, inner.closed)

	// Backends without Close are fine too.
	plain := Instrument("memory", NewMemoryStore())
	require.NoError(t, plain.(interface{ Close() error }).Close())
}
