// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the edge rate limiter: an in-memory token bucket per
// client identity with opportunistic garbage collection. It protects the
// process from abusive callers and is entirely separate from the upstream
// throttle gate, which paces outbound traffic globally.
//
// Notes:
//   - Process-local. Horizontally scaled deployments need a distributed
//     limiter to enforce global limits.
//   - Edge-level abuse control only; credential quota enforcement lives in
//     the keystore.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByAPIKeyOrIP returns a keyFunc that prefers the caller's API key (the
// "key" query parameter) and falls back to the client IP. Prefixes keep the
// two namespaces from colliding.
func KeyByAPIKeyOrIP() keyFunc {
	return func(c *gin.Context) string {
		if k := c.Query("key"); k != "" {
			return "key:" + k
		}
		return "ip:" + c.ClientIP()
	}
}

// visitor holds one bucket and the last time it was seen, for eviction.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-identity token-bucket limiter. Buckets are
// created on demand in a mutex-guarded map; idle buckets are evicted after
// a TTL during lookups to bound memory. Safe for concurrent use.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFn    keyFunc
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter constructs a RateLimiter with the given tokens-per-second
// and burst size, keyed by keyFn. burst values <= 0 are coerced to 1.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
	}
}

// getVisitor returns (and refreshes) the limiter for key, creating it if
// absent. GC runs before the fetch so a stale bucket can be evicted even
// when it is the one being requested.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	rl.cleanupN++
	if rl.cleanupN >= 5000 {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		lim := v.limiter
		rl.mu.Unlock()
		return lim
	}

	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	rl.mu.Unlock()
	return lim
}

// Handler returns a Gin middleware enforcing the per-identity limit. Over
// budget requests get a 429 failure envelope with a minimal Retry-After.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := rl.getVisitor(rl.keyFn(c))

		if lim.Allow() {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success":    false,
			"request_id": c.Writer.Header().Get(requestIDHeader),
			"code":       "too_many_requests",
			"error":      "rate limit exceeded",
		})
	}
}
