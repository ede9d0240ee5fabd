package port

import (
	"context"
	"time"
)

// Cache is an advisory key-value store. Implementations must degrade
// gracefully: a backend failure behaves like a miss on reads and a no-op on
// writes, logged but never surfaced. Callers can always fall through to the
// authoritative stores.
type Cache interface {
	// Get unmarshals the value under key into dest and reports whether a
	// usable value was found. Misses, backend errors, and undecodable
	// payloads all report false.
	Get(ctx context.Context, key string, dest any) bool

	// Set stores value under key for ttl. Best-effort.
	Set(ctx context.Context, key string, value any, ttl time.Duration)

	// Delete removes a single key. Best-effort.
	Delete(ctx context.Context, key string)

	// DeleteByPattern removes every key matching a glob pattern. Best-effort.
	DeleteByPattern(ctx context.Context, pattern string)

	// Health check
	Ping(ctx context.Context) error

	Close() error
}
