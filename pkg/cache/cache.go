// Package cache provides a pluggable byte cache for computed query results.
//
// The HTTP API uses it to avoid recomputing expensive whole-tree analyses
// (consanguinity surveys, brick-wall scans) on every request. Three backends
// are provided: a file cache for single-process use, a Redis cache for
// multi-instance deployments, and a null cache that disables caching. Only
// derived results are ever cached; the pedigree itself is never persisted.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss may be used by callers to signal a miss through error
// channels; the Cache interface itself reports misses via the ok return.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores opaque byte values under string keys with a TTL.
type Cache interface {
	// Get retrieves the value for key. The second return is false on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the value for key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}
