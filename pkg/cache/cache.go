// Package cache provides storage backends for rendered diagram output.
//
// Rendering is deterministic, so output is cached keyed by the SHA-256
// hash of the input text: identical source always maps to the same entry.
// Three backends cover the deployment shapes:
//   - FileCache: per-user cache directory for the CLI
//   - RedisCache: shared cache for multi-instance server deployments
//   - NullCache: no-op backend for tests and --no-cache runs
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by all backends. Get reports a
// miss with found=false rather than an error; errors mean the backend
// itself failed.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// This is the content address used by the render cache and the server's
// hash-verified endpoint.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// RenderKey builds the cache key for rendered output of the given input
// hash. Framed output is cached separately from bare output.
func RenderKey(hash string, framed bool) string {
	if framed {
		return "render:framed:" + hash
	}
	return "render:" + hash
}
