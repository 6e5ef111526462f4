package ratelimiter

import (
	"sync"
	"time"

	"pdf-review-server/internal/config"

	"go.uber.org/zap"
)

type clientWindow struct {
	count       int
	windowStart time.Time
}

// FixedWindowRateLimiter counts requests per client in fixed time frames.
// Counts reset when a client's frame elapses.
type FixedWindowRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientWindow
	cfg       config.RateLimiterConfig
	logger    *zap.SugaredLogger
	lastPrune time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*clientWindow),
		cfg:     cfg,
		logger:  logger,
	}
}

func (rl *FixedWindowRateLimiter) Enabled() bool {
	return rl.cfg.Enabled
}

// Allow reports whether the client may proceed, and if not, how long until
// its window resets.
func (rl *FixedWindowRateLimiter) Allow(clientID string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.pruneExpired(now)

	client, ok := rl.clients[clientID]
	if !ok || now.Sub(client.windowStart) >= rl.cfg.TimeFrame {
		rl.clients[clientID] = &clientWindow{count: 1, windowStart: now}
		return true, 0
	}

	if client.count < rl.cfg.RequestsPerTimeFrame {
		client.count++
		return true, 0
	}

	retryAfter := rl.cfg.TimeFrame - now.Sub(client.windowStart)
	rl.logger.Debugf("Rate limit exceeded for client %s, retry after %s", clientID, retryAfter)

	return false, retryAfter
}

// pruneExpired drops clients whose window has elapsed so the map does not
// grow with every distinct client seen over the process lifetime. Runs at
// most once per time frame. Caller must hold mu.
func (rl *FixedWindowRateLimiter) pruneExpired(now time.Time) {
	if now.Sub(rl.lastPrune) < rl.cfg.TimeFrame {
		return
	}

	for clientID, client := range rl.clients {
		if now.Sub(client.windowStart) >= rl.cfg.TimeFrame {
			delete(rl.clients, clientID)
		}
	}

	rl.lastPrune = now
}
