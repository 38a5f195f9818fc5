package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks keys that have already been processed so that
// at-most-once side effects (notification dispatch) are not repeated.
type IdempotencyStore interface {
	// MarkProcessed records a key as processed. Returns true if the key was
	// newly recorded, false if it had been recorded before.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// IsProcessed reports whether a key has been recorded.
	IsProcessed(ctx context.Context, key string) (bool, error)
	// Close closes the store and releases resources.
	Close() error
}
