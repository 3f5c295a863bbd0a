package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"

	"landregistry/pkg/platform/audit/store/postgres"
)

// Outbox is the relay's view of the audit outbox.
type Outbox interface {
	FetchPending(ctx context.Context, limit int) ([]postgres.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Producer publishes one keyed message to the audit topic.
type Producer interface {
	Publish(ctx context.Context, key string, eventType string, payload []byte) error
}

const (
	defaultInterval  = time.Second
	defaultBatchSize = 50
	publishAttempts  = 3
)

// Relay drains the outbox into the message broker. Entries are marked
// published only after the broker acknowledges them, so delivery is
// at-least-once.
type Relay struct {
	outbox    Outbox
	producer  Producer
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

type Option func(*Relay)

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		r.interval = d
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		r.batchSize = n
	}
}

func NewRelay(outbox Outbox, producer Producer, logger *slog.Logger, opts ...Option) *Relay {
	r := &Relay{
		outbox:    outbox,
		producer:  producer,
		logger:    logger,
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.Drain(ctx); err != nil {
				r.logger.ErrorContext(ctx, "outbox relay pass failed", "error", err)
			}
		}
	}
}

// Drain publishes one batch and returns how many entries were relayed. It
// stops at the first entry that cannot be published so ordering is kept.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	entries, err := r.outbox.FetchPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	var published []uuid.UUID
	var publishErr error
	for _, e := range entries {
		entry := e
		publishErr = retry.Do(
			func() error {
				return r.producer.Publish(ctx, entry.Key, entry.EventType, entry.Payload)
			},
			retry.Context(ctx),
			retry.Attempts(publishAttempts),
			retry.Delay(100*time.Millisecond),
			retry.LastErrorOnly(true),
		)
		if publishErr != nil {
			r.logger.WarnContext(ctx, "outbox publish failed",
				"outbox_id", entry.ID.String(),
				"event_type", entry.EventType,
				"error", publishErr,
			)
			break
		}
		published = append(published, entry.ID)
	}
	if err := r.outbox.MarkPublished(ctx, published, time.Now()); err != nil {
		return 0, err
	}
	return len(published), publishErr
}
