package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store counts hits per key inside a rolling window. Entries expire; nothing
// accumulates for the life of the process.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter enforces a per-key request budget against an injected Store.
type Limiter struct {
	store  Store
	max    int64
	window time.Duration
}

// New constructs a limiter allowing max hits per window.
func New(store Store, max int64, window time.Duration) *Limiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{store: store, max: max, window: window}
}

// Allow reports whether the key is still inside its budget. Store failures
// fail open so a degraded limiter never blocks legitimate traffic.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	count, err := l.store.Increment(ctx, key, l.window)
	if err != nil {
		return true
	}
	return count <= l.max
}

// RedisStore counts hits in Redis with a TTL-scoped key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a Redis-backed store.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := s.prefix + ":" + key
	count, err := s.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

// MemoryStore is an in-process store for development and tests. Expired
// entries are dropped lazily on access and swept when the map grows.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemoryStore constructs an in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &memoryEntry{expiresAt: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++

	if len(s.entries) > 1024 {
		s.sweep(now)
	}

	return entry.count, nil
}

func (s *MemoryStore) sweep(now time.Time) {
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
