// Package cache provides pluggable byte caches for rendered artifacts.
//
// Rendering a DOT document to SVG or PNG is the only expensive step of the
// pipeline, so artifacts are cached keyed by the hash of the DOT text plus
// the output format. Three backends are provided: a file cache for CLI use,
// a Redis cache for the HTTP service, and a null cache that disables
// caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKey builds the cache key for a rendered artifact from the DOT
// document hash and the output format.
func ArtifactKey(dotHash, format string) string {
	return fmt.Sprintf("artifact:%s:%s", format, dotHash)
}
