package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landregistry/pkg/platform/audit/store/postgres"
)

type fakeOutbox struct {
	pending   []postgres.OutboxEntry
	published []uuid.UUID
}

func (f *fakeOutbox) FetchPending(_ context.Context, limit int) ([]postgres.OutboxEntry, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, ids []uuid.UUID, _ time.Time) error {
	f.published = append(f.published, ids...)
	return nil
}

type fakeProducer struct {
	failOn string
	calls  map[string]int
}

func (f *fakeProducer) Publish(_ context.Context, key, _ string, _ []byte) error {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[key]++
	if key == f.failOn {
		return errors.New("broker unavailable")
	}
	return nil
}

func entry(key string) postgres.OutboxEntry {
	return postgres.OutboxEntry{ID: uuid.New(), Key: key, EventType: "land_registered", Payload: []byte(`{}`)}
}

func TestRelayDrain(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("publishes and marks a full batch", func(t *testing.T) {
		outbox := &fakeOutbox{pending: []postgres.OutboxEntry{entry("land:1"), entry("land:2")}}
		relay := NewRelay(outbox, &fakeProducer{}, logger)

		n, err := relay.Drain(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []uuid.UUID{outbox.pending[0].ID, outbox.pending[1].ID}, outbox.published)
	})

	t.Run("stops at the first failure and retries it", func(t *testing.T) {
		outbox := &fakeOutbox{pending: []postgres.OutboxEntry{entry("land:1"), entry("land:2"), entry("land:3")}}
		producer := &fakeProducer{failOn: "land:2"}
		relay := NewRelay(outbox, producer, logger)

		n, err := relay.Drain(context.Background())
		require.Error(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []uuid.UUID{outbox.pending[0].ID}, outbox.published)
		assert.Equal(t, publishAttempts, producer.calls["land:2"])
		assert.Zero(t, producer.calls["land:3"])
	})

	t.Run("respects batch size", func(t *testing.T) {
		outbox := &fakeOutbox{pending: []postgres.OutboxEntry{entry("a"), entry("b"), entry("c")}}
		relay := NewRelay(outbox, &fakeProducer{}, logger, WithBatchSize(2))

		n, err := relay.Drain(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}
