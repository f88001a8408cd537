package shared

import (
	"context"
	"time"
)

// IdempotentResult is the stored outcome of a request made with an
// idempotency key
type IdempotentResult struct {
	StatusCode int    `json:"status_code"`
	Body       []byte `json:"body"`
}

// IdempotencyStore tracks idempotency keys through reserve, complete and
// replay. Keys expire after their TTL.
type IdempotencyStore interface {
	// Reserve claims key for an in-flight request. It returns false when the
	// key is already reserved or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Complete stores the result for a reserved key
	Complete(ctx context.Context, key string, result IdempotentResult, ttl time.Duration) error
	// Lookup returns found=false for an unknown key and a nil result while
	// the request holding the key is still running
	Lookup(ctx context.Context, key string) (result *IdempotentResult, found bool, err error)
	// Release drops a reservation so the request can be retried
	Release(ctx context.Context, key string) error
	Close() error
}
