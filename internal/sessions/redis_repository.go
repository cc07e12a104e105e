package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rosterpad/rosterpad/internal/models"
)

// defaultSessionPrefix namespaces refresh sessions away from other tools
// sharing the same Redis.
const defaultSessionPrefix = "rosterpad:session:"

// RedisRepository keeps refresh sessions in Redis so admin logins survive a
// restart. Each session is one JSON value keyed by its refresh token; the
// Redis TTL mirrors the session's ExpiresAt so stale sessions evict
// themselves. Redis failures surface as models.ErrStorageUnavailable like
// any other storage fault.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a Redis-backed session repository. An empty
// prefix selects the default namespace.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = defaultSessionPrefix
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(refresh string) string {
	return r.prefix + refresh
}

func (r *RedisRepository) Create(ctx context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		// never store a session without an expiry
		ttl = time.Second
	}
	if err := r.client.Set(ctx, r.key(s.RefreshToken), b, ttl).Err(); err != nil {
		return fmt.Errorf("%w: store session: %v", models.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *RedisRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	b, err := r.client.Get(ctx, r.key(refresh)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch session: %v", models.ErrStorageUnavailable, err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	// ExpiresAt is authoritative even when the Redis TTL lags behind
	if time.Now().UTC().After(s.ExpiresAt) {
		_ = r.client.Del(ctx, r.key(refresh)).Err()
		return nil, nil
	}
	return &s, nil
}

func (r *RedisRepository) DeleteByRefresh(ctx context.Context, refresh string) error {
	if err := r.client.Del(ctx, r.key(refresh)).Err(); err != nil {
		return fmt.Errorf("%w: delete session: %v", models.ErrStorageUnavailable, err)
	}
	return nil
}
