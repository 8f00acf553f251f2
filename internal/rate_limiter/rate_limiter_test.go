package ratelimiter

import (
	"testing"
	"time"

	"github.com/navigatingnc/bid-management-system/internal/config"
)

func TestAllowWithinWindow(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 2,
		TimeFrame:            time.Minute,
		Enabled:              true,
	}, nil)

	for i := 0; i < 2; i++ {
		if allowed, _ := rl.Allow("10.0.0.1"); !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, retryAfter := rl.Allow("10.0.0.1")
	if allowed {
		t.Fatal("third request should be throttled")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("unexpected retry-after %v", retryAfter)
	}

	// Other clients keep their own window.
	if allowed, _ := rl.Allow("10.0.0.2"); !allowed {
		t.Error("separate client should not be throttled")
	}
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 1,
		TimeFrame:            time.Minute,
		Enabled:              false,
	}, nil)

	for i := 0; i < 10; i++ {
		if allowed, _ := rl.Allow("10.0.0.1"); !allowed {
			t.Fatal("disabled limiter must not throttle")
		}
	}
}
