package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/lexfrei/go-iosxe-wlc/internal/middleware"
)

func TestRateLimitNilLimiterPassesThrough(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := middleware.RateLimit(middleware.RateLimitConfig{})(http.DefaultTransport)

	start := time.Now()
	for i := 0; i < 5; i++ {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := transport.RoundTrip(req)
		if err != nil {
			t.Fatalf("RoundTrip() error = %v", err)
		}
		resp.Body.Close()
	}

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("5 unlimited requests took %v", elapsed)
	}
}

func TestRateLimitDelaysBeyondBurst(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Burst of 1, then one token every 50ms
	limiter := rate.NewLimiter(rate.Every(50*time.Millisecond), 1)
	transport := middleware.RateLimit(middleware.RateLimitConfig{Limiter: limiter})(http.DefaultTransport)

	start := time.Now()
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := transport.RoundTrip(req)
		if err != nil {
			t.Fatalf("RoundTrip() error = %v", err)
		}
		resp.Body.Close()
	}

	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("second request was not delayed, elapsed = %v", elapsed)
	}
}

func TestRateLimitHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Exhaust the burst so the next request must wait a long time
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	limiter.Allow()

	transport := middleware.RateLimit(middleware.RateLimitConfig{Limiter: limiter})(http.DefaultTransport)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if _, err := transport.RoundTrip(req); err == nil {
		t.Fatal("RoundTrip() expected error from canceled context")
	}
}
