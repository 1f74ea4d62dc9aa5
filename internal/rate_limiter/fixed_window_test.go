package ratelimiter

import (
	"testing"
	"time"

	"github.com/SeakMengs/CertVault/internal/config"
)

func TestFixedWindowLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 2,
		TimeFrame:            time.Minute,
		Enabled:              true,
	}, nil)

	if ok, _ := rl.Allow("1.2.3.4"); !ok {
		t.Error("First request should be allowed")
	}
	if ok, _ := rl.Allow("1.2.3.4"); !ok {
		t.Error("Second request should be allowed")
	}

	ok, retryAfter := rl.Allow("1.2.3.4")
	if ok {
		t.Error("Third request should be rejected")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("Unexpected retry-after duration: %s", retryAfter)
	}

	// Other clients keep their own window
	if ok, _ := rl.Allow("5.6.7.8"); !ok {
		t.Error("Different client should be allowed")
	}
}
