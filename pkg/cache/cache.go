package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is a key-value store with per-entry expiry. Payloads are raw bytes so
// the memory and Redis backends stay interchangeable; entries are replaced
// whole, never mutated in place.
type Store interface {
	// Get returns the stored payload, or ok=false if the key is absent or its
	// TTL has elapsed.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key. A later Set on the same key fully replaces
	// the prior entry and resets its clock. ttl<=0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// GetJSON retrieves a key and unmarshals it into T.
func GetJSON[T any](ctx context.Context, s Store, key string) (*T, bool, error) {
	b, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	var obj T
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, false, fmt.Errorf("cache unmarshal %q: %w", key, err)
	}
	return &obj, true, nil
}

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %q: %w", key, err)
	}
	return s.Set(ctx, key, b, ttl)
}

// Key builds a cache key from a prefix and an ID.
func Key(prefix, id string) string {
	return prefix + "_" + id
}
