package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisIdempotencyStore maps checkout idempotency keys to order IDs in
// redis, shared across server instances.
type RedisIdempotencyStore struct {
	client *redis.Client
}

// NewRedisIdempotencyStore creates a new RedisIdempotencyStore
func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

func idempotencyKey(tenantID uuid.UUID, key string) string {
	return fmt.Sprintf("pos:checkout:%s:%s", tenantID, key)
}

// Get looks up the order created under this key, if any
func (s *RedisIdempotencyStore) Get(ctx context.Context, tenantID uuid.UUID, key string) (uuid.UUID, bool, error) {
	raw, err := s.client.Get(ctx, idempotencyKey(tenantID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, err
	}
	return orderID, true, nil
}

// Put records which order a key produced
func (s *RedisIdempotencyStore) Put(ctx context.Context, tenantID uuid.UUID, key string, orderID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyKey(tenantID, key), orderID.String(), ttl).Err()
}

// memoryEntry is one remembered key with its expiry
type memoryEntry struct {
	orderID   uuid.UUID
	expiresAt time.Time
}

// MemoryIdempotencyStore is the single-instance fallback used when
// redis is not configured. Expired entries are dropped lazily on
// lookup and whenever the map is written.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryIdempotencyStore creates a new MemoryIdempotencyStore
func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		entries: make(map[string]memoryEntry),
	}
}

// Get looks up the order created under this key, if any
func (s *MemoryIdempotencyStore) Get(_ context.Context, tenantID uuid.UUID, key string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[idempotencyKey(tenantID, key)]
	if !ok {
		return uuid.Nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, idempotencyKey(tenantID, key))
		return uuid.Nil, false, nil
	}
	return entry.orderID, true, nil
}

// Put records which order a key produced
func (s *MemoryIdempotencyStore) Put(_ context.Context, tenantID uuid.UUID, key string, orderID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, k)
		}
	}

	s.entries[idempotencyKey(tenantID, key)] = memoryEntry{
		orderID:   orderID,
		expiresAt: now.Add(ttl),
	}
	return nil
}
