package ratelimiter

import (
	"testing"
	"time"

	"pdf-review-server/internal/config"
)

func TestFixedWindowLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 2,
		TimeFrame:            time.Minute,
		Enabled:              true,
	}, nil)

	for i := 0; i < 2; i++ {
		if allowed, _ := rl.Allow("1.2.3.4"); !allowed {
			t.Fatalf("Request %d unexpectedly limited", i+1)
		}
	}

	allowed, retryAfter := rl.Allow("1.2.3.4")
	if allowed {
		t.Error("Third request should be limited")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("retryAfter = %v, want within the time frame", retryAfter)
	}

	// Another client has its own window.
	if allowed, _ := rl.Allow("5.6.7.8"); !allowed {
		t.Error("Different client should not be limited")
	}
}

func TestFixedWindowLimiterResets(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 1,
		TimeFrame:            10 * time.Millisecond,
		Enabled:              true,
	}, nil)

	if allowed, _ := rl.Allow("1.2.3.4"); !allowed {
		t.Fatal("First request unexpectedly limited")
	}
	if allowed, _ := rl.Allow("1.2.3.4"); allowed {
		t.Fatal("Second request should be limited")
	}

	time.Sleep(15 * time.Millisecond)

	if allowed, _ := rl.Allow("1.2.3.4"); !allowed {
		t.Error("Request after window reset should be allowed")
	}
}

func TestFixedWindowLimiterPrunesExpiredClients(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 1,
		TimeFrame:            10 * time.Millisecond,
		Enabled:              true,
	}, nil)

	rl.Allow("1.2.3.4")

	time.Sleep(15 * time.Millisecond)

	// This call sweeps clients whose window has elapsed.
	rl.Allow("5.6.7.8")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.clients["1.2.3.4"]; ok {
		t.Error("Expired client window should have been pruned")
	}
	if _, ok := rl.clients["5.6.7.8"]; !ok {
		t.Error("Active client window should survive pruning")
	}
}
