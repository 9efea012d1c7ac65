// ABOUTME: Per-IP in-memory rate limiter for the session-issuing endpoint.
// ABOUTME: Uses golang.org/x/time/rate with background eviction of idle entries.
package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiterEntry pairs a token bucket with the last time its IP was seen, so
// eviction and limiting share one map lookup.
type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipRateLimiter struct {
	mu       sync.Mutex
	entries  map[string]*ipLimiterEntry
	rate     rate.Limit
	burst    int
	evictTTL time.Duration
}

func newIPRateLimiter(r rate.Limit, burst int, evictTTL time.Duration) *ipRateLimiter {
	rl := &ipRateLimiter{
		entries:  make(map[string]*ipLimiterEntry),
		rate:     r,
		burst:    burst,
		evictTTL: evictTTL,
	}
	go rl.evictLoop()
	return rl
}

// Allow reports whether the given IP is within its rate limit.
func (rl *ipRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	e, ok := rl.entries[ip]
	if !ok {
		e = &ipLimiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.entries[ip] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

// evictIdle drops entries not seen since the cutoff and returns how many were
// removed. Split out from the loop so tests can drive it directly.
func (rl *ipRateLimiter) evictIdle(cutoff time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	evicted := 0
	for ip, e := range rl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(rl.entries, ip)
			evicted++
		}
	}
	return evicted
}

func (rl *ipRateLimiter) evictLoop() {
	ticker := time.NewTicker(rl.evictTTL / 2)
	defer ticker.Stop()
	for range ticker.C {
		rl.evictIdle(time.Now().Add(-rl.evictTTL))
	}
}

// authRateLimit returns a middleware that applies per-IP rate limiting.
// The IP is extracted from r.RemoteAddr; chi's RealIP middleware must run first
// so X-Forwarded-For is honoured for requests behind a reverse proxy.
func (srv *Server) authRateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(ip); err == nil {
				ip = host
			}
			if !srv.rateLimiter.Allow(ip) {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
