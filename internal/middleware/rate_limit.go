package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is the global per-client-IP request limiter. Unlike the login
// throttle it is a smoothing token bucket, not a hard sliding window.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	window  time.Duration
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter for the given requests-per-minute budget.
// A non-positive budget disables limiting.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:   rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:   burst,
		window:  5 * time.Minute,
		clients: make(map[string]*clientLimiter),
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			key = r.RemoteAddr
		}
		if !rl.getLimiter(key).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Too Many Requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if entry, ok := rl.clients[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.clients[key] = &clientLimiter{limiter: limiter, lastSeen: now}
	rl.cleanupLocked(now)
	return limiter
}

func (rl *RateLimiter) cleanupLocked(now time.Time) {
	for key, entry := range rl.clients {
		if now.Sub(entry.lastSeen) > rl.window {
			delete(rl.clients, key)
		}
	}
}
