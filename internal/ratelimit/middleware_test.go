package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "landregistry/pkg/domain"
	"landregistry/pkg/requestcontext"
)

func newTestLimiter(store Store, limit int) (http.Handler, *Metrics) {
	m := NewMetrics(prometheus.NewRegistry())
	l := New(store, limit, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)), WithMetrics(m))
	return l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})), m
}

func get(h http.Handler, remoteAddr string, caller id.AccountID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/lands/count", nil)
	req.RemoteAddr = remoteAddr
	if !caller.IsNil() {
		req = req.WithContext(requestcontext.WithCaller(req.Context(), caller))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestMiddlewareLimitsAnonymousByIP(t *testing.T) {
	h, m := newTestLimiter(NewMemoryStore(), 2)

	first := get(h, "10.0.0.1:5000", id.NilAccount)
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, get(h, "10.0.0.1:5001", id.NilAccount).Code, "port is not part of the key")
	rejected := get(h, "10.0.0.1:5002", id.NilAccount)
	assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.NotEmpty(t, rejected.Header().Get("Retry-After"))
	assert.Contains(t, rejected.Body.String(), "rate_limit_exceeded")

	assert.Equal(t, http.StatusNoContent, get(h, "10.0.0.2:5000", id.NilAccount).Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("ip")))
}

func TestMiddlewareKeysAuthenticatedCallersByAccount(t *testing.T) {
	h, m := newTestLimiter(NewMemoryStore(), 1)
	alice, bob := id.NewAccountID(), id.NewAccountID()

	assert.Equal(t, http.StatusNoContent, get(h, "10.0.0.1:1", alice).Code)
	assert.Equal(t, http.StatusNoContent, get(h, "10.0.0.1:1", bob).Code, "same IP, different account")
	assert.Equal(t, http.StatusTooManyRequests, get(h, "10.0.0.9:1", alice).Code, "new IP, same account")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("account")))
}

type brokenStore struct{}

func (brokenStore) Allow(context.Context, string, int, time.Duration) (Result, error) {
	return Result{}, errors.New("down")
}

func TestMiddlewareAdmitsOnStoreError(t *testing.T) {
	h, _ := newTestLimiter(brokenStore{}, 1)
	for range 3 {
		require.Equal(t, http.StatusNoContent, get(h, "10.0.0.1:1", id.NilAccount).Code)
	}
}
