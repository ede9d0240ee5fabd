package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/KeliLabs/cryptoview/internal/core/port"
	"github.com/KeliLabs/cryptoview/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter wraps a shared *redis.Client behind the advisory cache port.
// The client is constructed once at startup and injected; the adapter owns
// no connection state of its own. Every operation swallows backend errors:
// reads report a miss, writes become no-ops, and the caller falls through to
// the authoritative stores.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) port.Cache {
	return &RedisAdapter{
		client: client,
	}
}

// Get unmarshals the stored payload into dest. Misses, backend errors, and
// undecodable payloads all report false.
func (r *RedisAdapter) Get(ctx context.Context, key string, dest any) bool {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache get failed, treating as miss", "key", key, "error", err)
		}
		metrics.CacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("cache payload undecodable, treating as miss", "key", key, "error", err)
		metrics.CacheMisses.Inc()
		return false
	}

	metrics.CacheHits.Inc()
	return true
}

// Set stores value under key for ttl. Best-effort: serialization and backend
// failures are logged and dropped.
func (r *RedisAdapter) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache set skipped, value not serializable", "key", key, "error", err)
		return
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

// Delete removes a single key. Best-effort.
func (r *RedisAdapter) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("cache delete failed", "key", key, "error", err)
	}
}

// DeleteByPattern removes every key matching a glob pattern. Best-effort.
func (r *RedisAdapter) DeleteByPattern(ctx context.Context, pattern string) {
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		slog.Warn("cache pattern scan failed", "pattern", pattern, "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache pattern delete failed", "pattern", pattern, "error", err)
	}
}

// Ping checks Redis connection health
func (r *RedisAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisAdapter) Close() error {
	return r.client.Close()
}
