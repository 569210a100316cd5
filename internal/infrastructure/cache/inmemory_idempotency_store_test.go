package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestInMemoryIdempotencyStore_Acquire(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("first acquire wins", func(t *testing.T) {
		ok, err := store.Acquire(ctx, "req-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("second acquire of a held key loses", func(t *testing.T) {
		ok, err := store.Acquire(ctx, "req-2", time.Hour)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = store.Acquire(ctx, "req-2", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok, "replayed key should be rejected")
	})

	t.Run("expired key can be acquired again", func(t *testing.T) {
		ok, err := store.Acquire(ctx, "req-3", 10*time.Millisecond)
		require.NoError(t, err)
		require.True(t, ok)

		time.Sleep(20 * time.Millisecond)

		ok, err = store.Acquire(ctx, "req-3", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("released key can be acquired again", func(t *testing.T) {
		ok, err := store.Acquire(ctx, "req-4", time.Hour)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, store.Release(ctx, "req-4"))

		ok, err = store.Acquire(ctx, "req-4", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	_, _ = store.Acquire(ctx, "short-lived-1", 10*time.Millisecond)
	_, _ = store.Acquire(ctx, "short-lived-2", 10*time.Millisecond)
	_, _ = store.Acquire(ctx, "long-lived", time.Hour)
	assert.Equal(t, 3, store.Size())

	time.Sleep(20 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 1, store.Size())

	ok, err := store.Acquire(ctx, "long-lived", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "long-lived entry should survive cleanup")
}

func TestInMemoryIdempotencyStore_ConcurrentAccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	const numGoroutines = 100

	results := make(chan bool, numGoroutines)
	for range numGoroutines {
		go func() {
			ok, err := store.Acquire(ctx, "concurrent", time.Hour)
			results <- err == nil && ok
		}()
	}

	winners := 0
	for range numGoroutines {
		if <-results {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one goroutine should acquire the key")
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewInMemoryIdempotencyStore()

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close(), "multiple closes should be safe")
}
