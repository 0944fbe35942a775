package auth

import (
	"context"
	"sync"
	"time"
)

// Rate-limited action names. Each action carries its own fixed window.
const (
	ActionCreateFile   = "create-file"
	ActionUpdateFile   = "update-file"
	ActionDeleteFile   = "delete-file"
	ActionSaveOnUnload = "save-on-unload"
	ActionGlobal       = "api-global"
)

// RateLimitConfig holds the fixed window parameters for one action
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

// DefaultRateLimits maps actions to their window configuration.
// Unknown actions fall back to ActionGlobal.
var DefaultRateLimits = map[string]RateLimitConfig{
	ActionCreateFile:   {Window: 60 * time.Second, MaxRequests: 10},
	ActionUpdateFile:   {Window: time.Second, MaxRequests: 5},
	ActionDeleteFile:   {Window: 60 * time.Second, MaxRequests: 20},
	ActionSaveOnUnload: {Window: time.Second, MaxRequests: 2},
	ActionGlobal:       {Window: 60 * time.Second, MaxRequests: 100},
}

// RateLimitResult reports the outcome of a rate limit check
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   int // seconds until the window resets
	Limit     int
}

// RateLimitEntry is one fixed-window counter
type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter checks and records request counts per (action, identifier).
// CheckAndIncrement mutates the counter; Peek never does, so response
// headers can be attached without double-counting.
type RateLimiter interface {
	CheckAndIncrement(ctx context.Context, identifier, action string) RateLimitResult
	Peek(ctx context.Context, identifier, action string) RateLimitResult
	Reset(ctx context.Context, identifier, action string)
}

// CounterStore abstracts the rate-limit counter table so the limiter can
// be backed by an in-process map or an external table without changing
// call sites.
type CounterStore interface {
	Get(key string) (RateLimitEntry, bool)
	Put(key string, entry RateLimitEntry)
	Delete(key string)
	// Compact opportunistically drops expired entries. Implementations
	// may throttle how often a sweep actually runs.
	Compact(now time.Time)
}

// FixedWindowLimiter implements fixed-window rate limiting over a
// CounterStore. Increments are best-effort under concurrency: the
// limiter serializes access to the store, which is sufficient for a
// single-process deployment where limits are advisory.
type FixedWindowLimiter struct {
	mu     sync.Mutex
	store  CounterStore
	limits map[string]RateLimitConfig
}

// NewFixedWindowLimiter creates a limiter with the default action table
func NewFixedWindowLimiter(store CounterStore) *FixedWindowLimiter {
	return NewFixedWindowLimiterWithConfig(store, DefaultRateLimits)
}

// NewFixedWindowLimiterWithConfig creates a limiter with a custom action table
func NewFixedWindowLimiterWithConfig(store CounterStore, limits map[string]RateLimitConfig) *FixedWindowLimiter {
	if store == nil {
		store = NewMemoryCounterStore()
	}
	return &FixedWindowLimiter{
		store:  store,
		limits: limits,
	}
}

func (l *FixedWindowLimiter) configFor(action string) RateLimitConfig {
	if cfg, ok := l.limits[action]; ok {
		return cfg
	}
	return l.limits[ActionGlobal]
}

func key(identifier, action string) string {
	return action + ":" + identifier
}

// CheckAndIncrement records one request and reports whether it is allowed
func (l *FixedWindowLimiter) CheckAndIncrement(ctx context.Context, identifier, action string) RateLimitResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.store.Compact(now)

	cfg := l.configFor(action)
	k := key(identifier, action)

	entry, ok := l.store.Get(k)
	if !ok || now.After(entry.ResetTime) {
		// Fresh window
		l.store.Put(k, RateLimitEntry{Count: 1, ResetTime: now.Add(cfg.Window)})
		return RateLimitResult{
			Allowed:   true,
			Remaining: cfg.MaxRequests - 1,
			ResetIn:   int(cfg.Window / time.Second),
			Limit:     cfg.MaxRequests,
		}
	}

	resetIn := secondsUntil(entry.ResetTime, now)

	if entry.Count >= cfg.MaxRequests {
		return RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			ResetIn:   resetIn,
			Limit:     cfg.MaxRequests,
		}
	}

	entry.Count++
	l.store.Put(k, entry)
	return RateLimitResult{
		Allowed:   true,
		Remaining: cfg.MaxRequests - entry.Count,
		ResetIn:   resetIn,
		Limit:     cfg.MaxRequests,
	}
}

// Peek reports the current window state without counting a request
func (l *FixedWindowLimiter) Peek(ctx context.Context, identifier, action string) RateLimitResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cfg := l.configFor(action)

	entry, ok := l.store.Get(key(identifier, action))
	if !ok || now.After(entry.ResetTime) {
		return RateLimitResult{
			Allowed:   true,
			Remaining: cfg.MaxRequests,
			ResetIn:   int(cfg.Window / time.Second),
			Limit:     cfg.MaxRequests,
		}
	}

	remaining := cfg.MaxRequests - entry.Count
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitResult{
		Allowed:   entry.Count < cfg.MaxRequests,
		Remaining: remaining,
		ResetIn:   secondsUntil(entry.ResetTime, now),
		Limit:     cfg.MaxRequests,
	}
}

// Reset clears the counter for an (identifier, action) pair
func (l *FixedWindowLimiter) Reset(ctx context.Context, identifier, action string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store.Delete(key(identifier, action))
}

func secondsUntil(t, now time.Time) int {
	secs := int((t.Sub(now) + time.Second - 1) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// MemoryCounterStore is the in-process CounterStore. Expired entries are
// garbage-collected lazily on access, never by a background timer.
type MemoryCounterStore struct {
	entries     map[string]RateLimitEntry
	lastCompact time.Time
	interval    time.Duration
}

// NewMemoryCounterStore creates an in-process counter store
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		entries:  make(map[string]RateLimitEntry),
		interval: time.Minute,
	}
}

// Get returns the entry for a key
func (s *MemoryCounterStore) Get(k string) (RateLimitEntry, bool) {
	entry, ok := s.entries[k]
	return entry, ok
}

// Put stores the entry for a key
func (s *MemoryCounterStore) Put(k string, entry RateLimitEntry) {
	s.entries[k] = entry
}

// Delete removes the entry for a key
func (s *MemoryCounterStore) Delete(k string) {
	delete(s.entries, k)
}

// Compact drops expired windows, at most once per compaction interval
func (s *MemoryCounterStore) Compact(now time.Time) {
	if now.Sub(s.lastCompact) < s.interval {
		return
	}
	s.lastCompact = now
	for k, entry := range s.entries {
		if now.After(entry.ResetTime) {
			delete(s.entries, k)
		}
	}
}
