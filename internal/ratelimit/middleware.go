package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"landregistry/pkg/platform/httputil"
	"landregistry/pkg/requestcontext"
)

// Limiter admits at most Limit requests per key per Window.
type Limiter struct {
	store   Store
	limit   int
	window  time.Duration
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

type Option func(*Limiter)

func WithMetrics(m *Metrics) Option {
	return func(l *Limiter) {
		l.metrics = m
	}
}

func New(store Store, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type exceededResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	RetryAfter       int    `json:"retry_after"`
}

// Middleware must run after authentication so callers are keyed by account.
// A store error admits the request.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, key := "ip", ipKey(clientIP(r))
		if caller := requestcontext.Caller(ctx); !caller.IsNil() {
			kind, key = "account", accountKey(caller.String())
		}

		res, err := l.store.Allow(ctx, key, l.limit, l.window)
		if err != nil {
			l.logger.ErrorContext(ctx, "rate limit check failed", "error", err, "kind", kind)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		if res.Allowed {
			next.ServeHTTP(w, r)
			return
		}

		if l.metrics != nil {
			l.metrics.RecordRejected(kind)
		}
		retry := res.RetryAfter(l.now())
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		httputil.WriteJSON(w, http.StatusTooManyRequests, exceededResponse{
			Error:            "rate_limit_exceeded",
			ErrorDescription: "too many requests, try again later",
			RetryAfter:       retry,
		})
	})
}

// clientIP expects RemoteAddr to have been rewritten by chi's RealIP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
