// Package ledger provides the execution guarantees every registry relies on:
// a single global order of state-mutating operations, all-or-nothing effect
// per operation, and identifier sequences that are never reused.
//
// Registries wrap each public mutation in RunInTx. When one registry calls
// another inside that callback the inner RunInTx joins the outer transaction,
// so a failure at any depth aborts the whole call tree.
package ledger

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/requestcontext"
)

// Ledger serializes mutations and isolates readers from in-flight ones.
type Ledger interface {
	// RunInTx runs fn exclusively. Any error returned by fn discards every
	// write fn made, including writes made by nested RunInTx calls.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	// View runs fn against committed state only.
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

// Sequencer hands out strictly increasing identifiers per named counter.
// Values are consumed even when the surrounding transaction aborts.
type Sequencer interface {
	Next(ctx context.Context, name string) (uint64, error)
}

const defaultTxTimeout = 5 * time.Second

var tracer trace.Tracer = otel.Tracer("landregistry/ledger")

type config struct {
	timeout time.Duration
}

type Option func(*config)

// WithTimeout bounds each top-level transaction when the caller's context
// carries no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

func newConfig(opts []Option) config {
	cfg := config{timeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// prepare applies the deadline and pins the operation timestamp so every
// record written by one operation shares it.
func (c config) prepare(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := ctx.Err(); err != nil {
		return ctx, func() {}, dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	cancel := func() {}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	}
	if _, ok := ctx.Value(requestcontext.ContextKeyRequestTime).(time.Time); !ok {
		ctx = requestcontext.WithTime(ctx, time.Now())
	}
	return ctx, cancel, nil
}

func startSpan(ctx context.Context, name, backend string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("ledger.backend", backend),
		attribute.String("request.id", requestcontext.RequestID(ctx)),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}
