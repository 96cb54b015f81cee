package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropDatabas3/authgate/internal/rate"
	"github.com/stretchr/testify/assert"
)

type stubLimiter struct {
	res rate.Result
	err error
	key string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (rate.Result, error) {
	s.key = key
	return s.res, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitAllows(t *testing.T) {
	l := &stubLimiter{res: rate.Result{Allowed: true}}
	req := httptest.NewRequest(http.MethodPost, "/v1/signup", nil)
	req.RemoteAddr = "1.2.3.4:5555"
	rec := httptest.NewRecorder()

	RateLimit(l)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.3.4", l.key)
}

func TestRateLimitBlocksWithRetryAfter(t *testing.T) {
	l := &stubLimiter{res: rate.Result{Allowed: false, RetryAfter: 42 * time.Second}}
	req := httptest.NewRequest(http.MethodPost, "/v1/signup", nil)
	rec := httptest.NewRecorder()

	RateLimit(l)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
}

func TestRateLimitFailsOpen(t *testing.T) {
	l := &stubLimiter{err: errors.New("redis down")}
	req := httptest.NewRequest(http.MethodPost, "/v1/signup", nil)
	rec := httptest.NewRecorder()

	RateLimit(l)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitPrefersForwardedFor(t *testing.T) {
	l := &stubLimiter{res: rate.Result{Allowed: true}}
	req := httptest.NewRequest(http.MethodPost, "/v1/signup", nil)
	req.Header.Set("X-Forwarded-For", "9.8.7.6, 10.0.0.1")
	rec := httptest.NewRecorder()

	RateLimit(l)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "9.8.7.6", l.key)
}
