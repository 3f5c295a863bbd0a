package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// breaker opens after failureThreshold consecutive primary errors and closes
// again after successThreshold consecutive primary successes.
type breaker struct {
	mu               sync.Mutex
	open             bool
	failures         int
	successes        int
	failureThreshold int
	successThreshold int
}

func (b *breaker) isOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// recordFailure reports whether this failure opened the circuit.
func (b *breaker) recordFailure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	b.successes = 0
	if !b.open && b.failures >= b.failureThreshold {
		b.open = true
		return true
	}
	return false
}

// recordSuccess reports whether this success closed the circuit.
func (b *breaker) recordSuccess() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		b.failures = 0
		return false
	}
	b.successes++
	if b.successes >= b.successThreshold {
		b.open = false
		b.failures = 0
		b.successes = 0
		return true
	}
	return false
}

// FailoverStore consults primary and answers from fallback whenever primary
// errors. While the circuit is open every answer comes from fallback, but
// primary is still probed so the circuit can close.
type FailoverStore struct {
	primary  Store
	fallback Store
	logger   *slog.Logger
	breaker  breaker
	onChange func(degraded bool)
}

type FailoverOption func(*FailoverStore)

// WithThresholds overrides the 5 failures to open and 3 successes to close.
func WithThresholds(failures, successes int) FailoverOption {
	return func(f *FailoverStore) {
		f.breaker.failureThreshold = failures
		f.breaker.successThreshold = successes
	}
}

// WithStateObserver is called each time the store enters or leaves degraded mode.
func WithStateObserver(fn func(degraded bool)) FailoverOption {
	return func(f *FailoverStore) {
		f.onChange = fn
	}
}

func NewFailoverStore(primary, fallback Store, logger *slog.Logger, opts ...FailoverOption) *FailoverStore {
	f := &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		breaker:  breaker{failureThreshold: 5, successThreshold: 3},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FailoverStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	res, err := f.primary.Allow(ctx, key, limit, window)
	if err != nil {
		if f.breaker.recordFailure() {
			f.logger.WarnContext(ctx, "rate limit store degraded, using in-process fallback", "error", err)
			f.notify(true)
		}
		return f.fallback.Allow(ctx, key, limit, window)
	}
	if f.breaker.isOpen() {
		if f.breaker.recordSuccess() {
			f.logger.InfoContext(ctx, "rate limit store recovered")
			f.notify(false)
		} else {
			return f.fallback.Allow(ctx, key, limit, window)
		}
	} else {
		f.breaker.recordSuccess()
	}
	return res, nil
}

// Degraded reports whether answers currently come from the fallback.
func (f *FailoverStore) Degraded() bool {
	return f.breaker.isOpen()
}

func (f *FailoverStore) notify(degraded bool) {
	if f.onChange != nil {
		f.onChange(degraded)
	}
}
