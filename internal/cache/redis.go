package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
	"github.com/redis/go-redis/v9"
)

const maxJitter = 5 * time.Minute

// RedisSnapshotCache keeps computed cart snapshots in Redis.
// Entries expire after the base TTL plus a random jitter so that
// snapshots written together do not expire together.
type RedisSnapshotCache struct {
	client  redis.UniversalClient
	baseTTL time.Duration
}

func NewRedisSnapshotCache(client redis.UniversalClient, baseTTL time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

var _ port.SnapshotCache = (*RedisSnapshotCache)(nil)

func (r *RedisSnapshotCache) Get(ctx context.Context, ownerID string) (domain.CartSnapshot, error) {
	var snapshot domain.CartSnapshot

	data, err := r.client.Get(ctx, cacheKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return snapshot, port.ErrCacheMiss
	}
	if err != nil {
		return snapshot, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("unmarshal snapshot failed: %w", err)
	}

	return snapshot, nil
}

func (r *RedisSnapshotCache) Set(ctx context.Context, ownerID string, snapshot domain.CartSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot failed: %w", err)
	}

	if err := r.client.Set(ctx, cacheKey(ownerID), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (r *RedisSnapshotCache) Delete(ctx context.Context, ownerID string) error {
	if err := r.client.Del(ctx, cacheKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func (r *RedisSnapshotCache) ttl() time.Duration {
	jitter := min(r.baseTTL/4, maxJitter)
	if jitter <= 0 {
		return r.baseTTL
	}

	return r.baseTTL + rand.N(jitter)
}

func cacheKey(ownerID string) string {
	return fmt.Sprintf("cart:snapshot:%s", ownerID)
}
