package shared

import (
	"context"
	"time"
)

// IdempotencyStore guards posting operations against replays of the same request
type IdempotencyStore interface {
	// Acquire claims key for ttl. It returns false when the key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a key so a failed operation can be retried
	Release(ctx context.Context, key string) error
}

type idempotencyKey struct{}

// ContextWithIdempotencyKey attaches a client-supplied idempotency key to ctx
func ContextWithIdempotencyKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, idempotencyKey{}, key)
}

// IdempotencyKeyFromContext returns the key set by ContextWithIdempotencyKey, or ""
func IdempotencyKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKey{}).(string)
	return key
}
