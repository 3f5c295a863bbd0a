package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedStore answers with err when set, otherwise allows everything.
type scriptedStore struct {
	err   error
	calls int
}

func (s *scriptedStore) Allow(_ context.Context, _ string, limit int, _ time.Duration) (Result, error) {
	s.calls++
	if s.err != nil {
		return Result{}, s.err
	}
	return Result{Allowed: true, Limit: limit, Remaining: limit}, nil
}

func TestFailoverStore(t *testing.T) {
	ctx := context.Background()
	primary := &scriptedStore{}
	fallback := NewMemoryStore()
	var transitions []bool
	f := NewFailoverStore(primary, fallback, slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithThresholds(2, 2),
		WithStateObserver(func(degraded bool) { transitions = append(transitions, degraded) }),
	)

	t.Run("healthy primary answers", func(t *testing.T) {
		res, err := f.Allow(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, res.Remaining, "primary result, not the fallback window")
		assert.False(t, f.Degraded())
	})

	t.Run("errors fall back and open the circuit", func(t *testing.T) {
		primary.err = errors.New("connection refused")
		res, err := f.Allow(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.False(t, f.Degraded())

		res, err = f.Allow(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		assert.False(t, res.Allowed, "fallback enforces the limit")
		assert.True(t, f.Degraded())
	})

	t.Run("circuit closes after consecutive successes", func(t *testing.T) {
		primary.err = nil
		res, err := f.Allow(ctx, "other", 5, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 4, res.Remaining, "still answered by the fallback")
		assert.True(t, f.Degraded())

		res, err = f.Allow(ctx, "other", 5, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 5, res.Remaining)
		assert.False(t, f.Degraded())
	})

	assert.Equal(t, []bool{true, false}, transitions)
}
