package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := New(10, time.Minute)

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow("1.2.3.4"), "request %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("1.2.3.4"), "request over the limit should be denied")

	// Other keys count separately.
	assert.True(t, limiter.Allow("5.6.7.8"))
}

func TestLimiter_WindowReset(t *testing.T) {
	limiter := New(2, 50*time.Millisecond)

	assert.True(t, limiter.Allow("k"))
	assert.True(t, limiter.Allow("k"))
	assert.False(t, limiter.Allow("k"))

	time.Sleep(80 * time.Millisecond)

	assert.True(t, limiter.Allow("k"), "a fresh window starts after expiry")
}

func TestLimiter_Remaining(t *testing.T) {
	limiter := New(3, time.Minute)

	assert.Equal(t, 3, limiter.Remaining("k"))
	limiter.Allow("k")
	assert.Equal(t, 2, limiter.Remaining("k"))
	limiter.Allow("k")
	limiter.Allow("k")
	assert.Equal(t, 0, limiter.Remaining("k"))

	limiter.Allow("k")
	assert.Equal(t, 0, limiter.Remaining("k"), "remaining never goes negative")
}
