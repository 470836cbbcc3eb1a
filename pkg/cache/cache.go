// Package cache memoizes generated scene graphs.
//
// A layout is fully determined by its CitySpec and seed, so a cached
// scene for a (spec, seed) pair is interchangeable with a fresh run.
// Backends: NullCache (disabled), FileCache (CLI) and RedisCache (server).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

// Cache stores opaque byte payloads by key.
type Cache interface {
	// Get returns the payload and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data; ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SceneKey derives the cache key for a scene generated from s with seed.
// It fails when s cannot be encoded, e.g. for NaN or infinite fields.
func SceneKey(s spec.CitySpec, seed uint64) (string, error) {
	return hashKey("scene", s, seed)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) (string, error) {
	data, err := json.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("encoding %s key: %w", prefix, err)
	}
	return fmt.Sprintf("%s:%s", prefix, Hash(data)), nil
}

// Hash computes a SHA-256 hash of the input data as a 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GetJSON decodes a cached JSON payload into v. A payload that no longer
// decodes is deleted and reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	return c.Set(ctx, key, data, ttl)
}
