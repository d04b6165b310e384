// Package security provides request rate limiting and login brute-force
// protection.
package security

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RateLimiter is a per-identifier token bucket. An identifier is whatever
// the caller keys on, typically a client IP or a user id.
type RateLimiter struct {
	buckets map[string]*bucket
	mu      sync.Mutex

	maxTokens  int
	refillRate time.Duration

	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
}

type bucket struct {
	tokens     int
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter creates a limiter that allows maxTokens requests in a
// burst and refills one token every refillRate.
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:     make(map[string]*bucket),
		maxTokens:   maxTokens,
		refillRate:  refillRate,
		stopCleanup: make(chan struct{}),
	}
	rl.cleanupTicker = time.NewTicker(10 * time.Minute)
	go rl.cleanup()
	return rl
}

// Allow reports whether a request from identifier may proceed and consumes
// a token when it does.
func (rl *RateLimiter) Allow(identifier string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[identifier]
	if !ok {
		rl.buckets[identifier] = &bucket{
			tokens:     rl.maxTokens - 1,
			lastRefill: time.Now(),
		}
		rl.mu.Unlock()
		return true
	}
	rl.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	refill := int(time.Since(b.lastRefill) / rl.refillRate)
	if refill > 0 {
		b.tokens += refill
		if b.tokens > rl.maxTokens {
			b.tokens = rl.maxTokens
		}
		b.lastRefill = time.Now()
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// Reset drops the bucket for identifier.
func (rl *RateLimiter) Reset(identifier string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, identifier)
}

// Stop halts the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.cleanupTicker.Stop()
	close(rl.stopCleanup)
}

func (rl *RateLimiter) cleanup() {
	for {
		select {
		case <-rl.cleanupTicker.C:
			rl.mu.Lock()
			now := time.Now()
			for id, b := range rl.buckets {
				b.mu.Lock()
				// inactive for an hour, forget it
				if now.Sub(b.lastRefill) > time.Hour {
					delete(rl.buckets, id)
				}
				b.mu.Unlock()
			}
			rl.mu.Unlock()
		case <-rl.stopCleanup:
			return
		}
	}
}

// Limit wraps the limiter as a Fiber middleware keyed by client IP.
// Rejected requests get a 429 with a retry hint.
func Limit(rl *RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.Allow(c.IP()) {
			c.Set("Retry-After", "60")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests",
			})
		}
		return c.Next()
	}
}
