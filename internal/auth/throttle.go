package auth

import (
	"sync"
	"time"
)

// Throttle is a process-local sliding-window limiter keyed by client
// address. It guards the login endpoint only; state lives for the life of
// the process and is not shared across instances.
type Throttle struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	attempts    map[string][]time.Time
}

func NewThrottle(maxAttempts int, window time.Duration) *Throttle {
	return &Throttle{
		maxAttempts: maxAttempts,
		window:      window,
		attempts:    make(map[string][]time.Time),
	}
}

// Allow evicts attempts older than the window, then either records this
// attempt and returns true, or returns false without recording once the
// cap is reached. The read-evict-append sequence is serialized per call so
// concurrent logins from one address cannot undercount.
func (t *Throttle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	kept := t.attempts[key][:0]
	for _, ts := range t.attempts[key] {
		if now.Sub(ts) <= t.window {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= t.maxAttempts {
		t.attempts[key] = kept
		return false
	}

	t.attempts[key] = append(kept, now)
	return true
}
