package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottle_CapWithinWindow(t *testing.T) {
	th := NewThrottle(5, 300*time.Second)

	for i := 0; i < 5; i++ {
		assert.True(t, th.Allow("1.2.3.4"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, th.Allow("1.2.3.4"), "6th attempt should be rejected")
	assert.False(t, th.Allow("1.2.3.4"), "rejection does not reset the window")
}

func TestThrottle_KeysAreIndependent(t *testing.T) {
	th := NewThrottle(1, 300*time.Second)

	assert.True(t, th.Allow("a"))
	assert.False(t, th.Allow("a"))
	assert.True(t, th.Allow("b"))
}

func TestThrottle_RecoversAfterWindow(t *testing.T) {
	th := NewThrottle(2, 50*time.Millisecond)

	assert.True(t, th.Allow("x"))
	assert.True(t, th.Allow("x"))
	assert.False(t, th.Allow("x"))

	time.Sleep(80 * time.Millisecond)
	assert.True(t, th.Allow("x"), "attempts older than the window are evicted")
}

func TestThrottle_ConcurrentSameKey(t *testing.T) {
	th := NewThrottle(5, 300*time.Second)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if th.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, allowed, "exactly the cap may pass under concurrency")
}
