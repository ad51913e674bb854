package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RateLimiter enforces sliding per-minute and per-hour windows per client IP.
// Health checks are exempt so orchestrator probes never get throttled.
type RateLimiter struct {
	mu        sync.Mutex
	hits      map[string][]time.Time
	perMinute int
	perHour   int
	now       func() time.Time
}

func NewRateLimiter(perMinute, perHour int) *RateLimiter {
	return &RateLimiter{
		hits:      make(map[string][]time.Time),
		perMinute: perMinute,
		perHour:   perHour,
		now:       time.Now,
	}
}

var rateLimitExempt = map[string]struct{}{
	"/health": {},
}

// Allow records one hit and reports whether the client is within both windows.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	hourAgo := now.Add(-time.Hour)
	minuteAgo := now.Add(-time.Minute)

	kept := rl.hits[key][:0]
	lastMinute := 0
	for _, t := range rl.hits[key] {
		if t.After(hourAgo) {
			kept = append(kept, t)
			if t.After(minuteAgo) {
				lastMinute++
			}
		}
	}
	rl.hits[key] = kept

	if lastMinute >= rl.perMinute || len(kept) >= rl.perHour {
		return false
	}
	rl.hits[key] = append(rl.hits[key], now)
	return true
}

// Middleware is the fiber adapter for the limiter.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, exempt := rateLimitExempt[c.Path()]; exempt {
			return c.Next()
		}
		if !rl.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded"})
		}
		return c.Next()
	}
}
