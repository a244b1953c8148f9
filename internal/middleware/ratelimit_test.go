package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiterMiddleware(rate.Every(time.Hour), 1)
	handler := rl.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/alice", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestRateLimiterIsPerClient(t *testing.T) {
	rl := NewRateLimiterMiddleware(rate.Every(time.Hour), 1)
	handler := rl.Middleware(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/api/alice", nil)
	first.RemoteAddr = "10.0.0.1:54321"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, first)
	assert.Equal(t, http.StatusOK, rr.Code)

	// A different client gets its own bucket.
	second := httptest.NewRequest(http.MethodPost, "/api/alice", nil)
	second.RemoteAddr = "10.0.0.2:54321"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, second)
	assert.Equal(t, http.StatusOK, rr.Code)
}
