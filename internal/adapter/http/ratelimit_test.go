package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterMinuteWindow(t *testing.T) {
	rl := NewRateLimiter(3, 100)
	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "other clients are unaffected")
}

func TestRateLimiterSlidesForward(t *testing.T) {
	rl := NewRateLimiter(2, 100)
	now := time.Now()
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiterHourWindow(t *testing.T) {
	rl := NewRateLimiter(1000, 5)
	now := time.Now()
	rl.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
		now = now.Add(2 * time.Minute)
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	now = now.Add(time.Hour)
	assert.True(t, rl.Allow("1.2.3.4"))
}
