// Package cache provides pluggable byte caches for generated graph artifacts.
//
// A documentation run renders the same directory graphs over and over between
// source changes, and Graphviz rasterization dominates the runtime. Caches
// store rendered artifacts keyed by the manifest content and the generation
// options, so unchanged directories are served from disk (or a shared redis
// for CI builds) instead of being re-rendered.
//
// Three backends are provided:
//   - FileCache: per-user cache directory, for local CLI usage
//   - RedisCache: shared cache for CI documentation builds
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts carries the generation options that affect graph output.
// Two runs with equal manifest hashes and equal options produce identical
// artifacts, so all of these participate in the cache key.
type GraphKeyOpts struct {
	SuccessorDepth int
	AncestorDepth  int
	LinkRelations  bool
	Transparent    bool
	FontName       string
	FontSize       int
}

// GraphKey generates a cache key for the DOT text of one directory graph.
func GraphKey(manifestHash, dir string, opts GraphKeyOpts) string {
	return hashKey("graph", manifestHash, dir, opts)
}

// ArtifactKey generates a cache key for a rendered artifact (svg, png)
// derived from the DOT text with the given hash.
func ArtifactKey(dotHash, format string) string {
	return hashKey("artifact", dotHash, format)
}
