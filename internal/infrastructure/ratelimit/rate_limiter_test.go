package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustsAndRefills(t *testing.T) {
	bucket := NewTokenBucket(2, 1, 50*time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.True(t, allowed)

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))

	time.Sleep(60 * time.Millisecond)
	allowed, _ = bucket.Allow()
	assert.True(t, allowed)
}

func TestRateLimiterIsolatesUsersAndActions(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 5; i++ {
		allowed, _ := rl.Allow("u1", "send_offer")
		assert.True(t, allowed)
	}
	allowed, _ := rl.Allow("u1", "send_offer")
	assert.False(t, allowed)

	// Another user, and another action for the same user, are unaffected.
	allowed, _ = rl.Allow("u2", "send_offer")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("u1", "send_message")
	assert.True(t, allowed)
}

func TestGetStatusReportsCapacity(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("u1", "typing")
	tokens, max := rl.GetStatus("u1", "typing")
	assert.Equal(t, 29, tokens)
	assert.Equal(t, 30, max)

	tokens, max = rl.GetStatus("nobody", "typing")
	assert.Equal(t, 0, tokens)
	assert.Equal(t, 0, max)
}
