package audit

import (
	"context"
	"encoding/hex"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"landregistry/pkg/requestcontext"
)

// Publisher captures structured audit events. Emission is fail-closed: when
// the store rejects an event the caller's operation must fail, which rolls the
// mutation back together with the event.
type Publisher struct {
	store  Store
	logger *slog.Logger
	key    []byte
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithHashKey sets the key used for SubjectIDHash. Without it hashes are
// unkeyed. Keys longer than blake2b.Size are first hashed down to that size.
func WithHashKey(key []byte) Option {
	return func(p *Publisher) {
		if len(key) > blake2b.Size {
			sum := blake2b.Sum512(key)
			key = sum[:]
		}
		p.key = key
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit fills identity, time and correlation fields from ctx and appends the event.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.ActorID.IsNil() {
		event.ActorID = requestcontext.Caller(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Category == "" {
		event.Category = AuditEvent(event.Action).Category()
	}
	if err := p.store.Append(ctx, event); err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "failed to append audit event",
				"action", event.Action,
				"subject", event.Subject,
				"error", err,
			)
		}
		return err
	}
	return nil
}

// HashSubjectID returns a hex BLAKE2b-256 digest of an identity document number.
func (p *Publisher) HashSubjectID(value string) string {
	h, err := blake2b.New256(p.key)
	if err != nil {
		panic("audit: hash key exceeds blake2b.Size")
	}
	h.Write([]byte(value))
	return hex.EncodeToString(h.Sum(nil))
}
