package ratelimiter

import (
	"sync"
	"time"

	"github.com/SeakMengs/CertVault/internal/config"
	"go.uber.org/zap"
)

type window struct {
	count   int
	startAt time.Time
}

// FixedWindowRateLimiter counts requests per client within a fixed time
// frame. Counters reset when the frame elapses.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	cfg     config.RateLimiterConfig
	logger  *zap.SugaredLogger
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		cfg:     cfg,
		logger:  logger,
	}
}

func (rl *FixedWindowRateLimiter) Enabled() bool {
	return rl.cfg.Enabled
}

// Allow reports whether the client may proceed and, when it may not, how
// long until its window resets.
func (rl *FixedWindowRateLimiter) Allow(clientID string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	w, exists := rl.clients[clientID]
	if !exists || now.Sub(w.startAt) >= rl.cfg.TimeFrame {
		rl.clients[clientID] = &window{count: 1, startAt: now}
		return true, 0
	}

	if w.count >= rl.cfg.RequestsPerTimeFrame {
		retryAfter := rl.cfg.TimeFrame - now.Sub(w.startAt)
		rl.logger.Debugf("Rate limit exceeded for client %s, retry after %s", clientID, retryAfter)
		return false, retryAfter
	}

	w.count++
	return true, 0
}
