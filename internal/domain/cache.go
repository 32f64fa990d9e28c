package domain

import (
	"context"
	"time"
)

// Cache is a key-value store with per-entry expiry, used to memoize
// idempotent reads of the remote API within a short window.
type Cache interface {
	// Get retrieves the raw cached payload. A missing or expired entry
	// is reported as ErrCacheMiss; an expired entry is evicted on the
	// way out.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a payload with expiry now+ttl. A non-positive ttl
	// falls back to the implementation's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes one entry. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear drops every entry.
	Clear(ctx context.Context) error
}
