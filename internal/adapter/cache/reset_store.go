package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kishorefa/Sainxt-platform-backend/internal/repository"
)

// RedisResetStore records consumed password-reset tokens in Redis so a token
// authorizes exactly one password change. Entries expire with the token
// itself, keeping the keyspace bounded.
type RedisResetStore struct {
	client redis.UniversalClient
}

var _ repository.ResetTokenStore = (*RedisResetStore)(nil)

// NewRedisResetStore constructs a Redis-backed consumed-token store.
func NewRedisResetStore(client redis.UniversalClient) *RedisResetStore {
	return &RedisResetStore{client: client}
}

// MarkUsed records the token and reports whether this call was the first use.
func (s *RedisResetStore) MarkUsed(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	first, err := s.client.SetNX(ctx, resetKey(token), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark reset token used: %w", err)
	}
	return first, nil
}

// Tokens are signed credentials; only a digest is stored.
func resetKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "reset:used:" + hex.EncodeToString(sum[:])
}

// MemoryResetStore is the in-process fallback used when no Redis address is
// configured. Single-use enforcement then only holds within one process.
type MemoryResetStore struct {
	mu   sync.Mutex
	used map[string]time.Time
}

var _ repository.ResetTokenStore = (*MemoryResetStore)(nil)

// NewMemoryResetStore constructs the in-process store.
func NewMemoryResetStore() *MemoryResetStore {
	return &MemoryResetStore{used: make(map[string]time.Time)}
}

// MarkUsed records the token and reports whether this call was the first use.
func (s *MemoryResetStore) MarkUsed(_ context.Context, token string, ttl time.Duration) (bool, error) {
	now := time.Now()
	key := resetKey(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, expiry := range s.used {
		if now.After(expiry) {
			delete(s.used, k)
		}
	}

	if expiry, ok := s.used[key]; ok && now.Before(expiry) {
		return false, nil
	}
	s.used[key] = now.Add(ttl)
	return true, nil
}
