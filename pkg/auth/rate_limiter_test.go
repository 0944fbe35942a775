package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimits() map[string]RateLimitConfig {
	return map[string]RateLimitConfig{
		ActionCreateFile: {Window: time.Minute, MaxRequests: 3},
		ActionUpdateFile: {Window: 50 * time.Millisecond, MaxRequests: 2},
		ActionGlobal:     {Window: time.Minute, MaxRequests: 100},
	}
}

func TestFixedWindowLimiter_AllowsUpToLimit(t *testing.T) {
	ctx := context.Background()
	limiter := NewFixedWindowLimiterWithConfig(NewMemoryCounterStore(), testLimits())

	for i := 0; i < 3; i++ {
		result := limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 3, result.Limit)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result := limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Positive(t, result.ResetIn)
}

func TestFixedWindowLimiter_IdentifiersAreIsolated(t *testing.T) {
	ctx := context.Background()
	limiter := NewFixedWindowLimiterWithConfig(NewMemoryCounterStore(), testLimits())

	for i := 0; i < 3; i++ {
		limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile)
	}
	assert.False(t, limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile).Allowed)

	// A different caller still has a fresh window
	assert.True(t, limiter.CheckAndIncrement(ctx, "user2", ActionCreateFile).Allowed)
}

func TestFixedWindowLimiter_ActionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	limiter := NewFixedWindowLimiterWithConfig(NewMemoryCounterStore(), testLimits())

	for i := 0; i < 3; i++ {
		limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile)
	}
	assert.False(t, limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile).Allowed)

	// Exhausting one action leaves the others untouched
	assert.True(t, limiter.CheckAndIncrement(ctx, "user1", ActionUpdateFile).Allowed)
}

func TestFixedWindowLimiter_WindowExpiryResetsCounter(t *testing.T) {
	ctx := context.Background()
	limiter := NewFixedWindowLimiterWithConfig(NewMemoryCounterStore(), testLimits())

	limiter.CheckAndIncrement(ctx, "user1", ActionUpdateFile)
	limiter.CheckAndIncrement(ctx, "user1", ActionUpdateFile)
	assert.False(t, limiter.CheckAndIncrement(ctx, "user1", ActionUpdateFile).Allowed)

	time.Sleep(60 * time.Millisecond)

	result := limiter.CheckAndIncrement(ctx, "user1", ActionUpdateFile)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Remaining)
}

func TestFixedWindowLimiter_PeekDoesNotIncrement(t *testing.T) {
	ctx := context.Background()
	limiter := NewFixedWindowLimiterWithConfig(NewMemoryCounterStore(), testLimits())

	limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile)

	for i := 0; i < 10; i++ {
		result := limiter.Peek(ctx, "user1", ActionCreateFile)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2, result.Remaining)
	}

	// The counter only moved by the single real request
	result := limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile)
	assert.Equal(t, 1, result.Remaining)
}

func TestFixedWindowLimiter_PeekOnFreshWindow(t *testing.T) {
	ctx := context.Background()
	limiter := NewFixedWindowLimiterWithConfig(NewMemoryCounterStore(), testLimits())

	result := limiter.Peek(ctx, "nobody", ActionCreateFile)
	assert.True(t, result.Allowed)
	assert.Equal(t, 3, result.Remaining)
	assert.Equal(t, 3, result.Limit)
}

func TestFixedWindowLimiter_Reset(t *testing.T) {
	ctx := context.Background()
	limiter := NewFixedWindowLimiterWithConfig(NewMemoryCounterStore(), testLimits())

	for i := 0; i < 3; i++ {
		limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile)
	}
	assert.False(t, limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile).Allowed)

	limiter.Reset(ctx, "user1", ActionCreateFile)

	result := limiter.CheckAndIncrement(ctx, "user1", ActionCreateFile)
	assert.True(t, result.Allowed)
	assert.Equal(t, 2, result.Remaining)
}

func TestFixedWindowLimiter_UnknownActionFallsBackToGlobal(t *testing.T) {
	ctx := context.Background()
	limiter := NewFixedWindowLimiterWithConfig(NewMemoryCounterStore(), testLimits())

	result := limiter.CheckAndIncrement(ctx, "user1", "no-such-action")
	require.True(t, result.Allowed)
	assert.Equal(t, 100, result.Limit)
}

func TestDefaultRateLimits_CoverEveryAction(t *testing.T) {
	for _, action := range []string{ActionCreateFile, ActionUpdateFile, ActionDeleteFile, ActionSaveOnUnload, ActionGlobal} {
		cfg, ok := DefaultRateLimits[action]
		require.True(t, ok, "missing limit for %s", action)
		assert.Positive(t, cfg.MaxRequests)
		assert.Positive(t, cfg.Window)
	}
}

func TestMemoryCounterStore_CompactDropsExpiredEntries(t *testing.T) {
	store := NewMemoryCounterStore()
	now := time.Now()

	store.Put("a", RateLimitEntry{Count: 1, ResetTime: now.Add(-time.Second)})
	store.Put("b", RateLimitEntry{Count: 1, ResetTime: now.Add(time.Hour)})

	// First compaction after construction always runs
	store.Compact(now.Add(2 * time.Minute))

	_, ok := store.Get("a")
	assert.False(t, ok)
	_, ok = store.Get("b")
	assert.True(t, ok)
}
