package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestTimingMiddleware_SetsProcessTime(t *testing.T) {
	h := TimingMiddleware(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/teams", nil))

	assert.Regexp(t, `^\d+\.\d{2}ms$`, rec.Header().Get("X-Process-Time"))
}

func TestRateLimitMiddleware_RejectsOverBurst(t *testing.T) {
	// burst of 1 at 2 requests per minute: second immediate call is denied
	h := RateLimitMiddleware(2, time.Minute)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	req.RemoteAddr = "203.0.113.9:4444"

	first := httptest.NewRecorder()
	h.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"), "retry hint matches the window")
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}

func TestRateLimitMiddleware_BucketsPerIP(t *testing.T) {
	h := RateLimitMiddleware(2, time.Minute)(okHandler())

	drained := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	drained.RemoteAddr = "203.0.113.9:4444"
	h.ServeHTTP(httptest.NewRecorder(), drained)

	other := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	other.RemoteAddr = "203.0.113.10:4444"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "a different client keeps its own allowance")
}

func TestRateLimitMiddleware_PreflightExempt(t *testing.T) {
	h := RateLimitMiddleware(2, time.Minute)(okHandler())

	get := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	get.RemoteAddr = "203.0.113.9:4444"
	h.ServeHTTP(httptest.NewRecorder(), get)

	// allowance drained, but preflights still pass
	for i := 0; i < 3; i++ {
		preflight := httptest.NewRequest(http.MethodOptions, "/api/teams", nil)
		preflight.RemoteAddr = "203.0.113.9:4444"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, preflight)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
