package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryResetStoreReportsFirstUseOnly(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResetStore()

	first, err := store.MarkUsed(ctx, "token-a", time.Minute)
	require.NoError(t, err)
	require.True(t, first)

	again, err := store.MarkUsed(ctx, "token-a", time.Minute)
	require.NoError(t, err)
	require.False(t, again)

	other, err := store.MarkUsed(ctx, "token-b", time.Minute)
	require.NoError(t, err)
	require.True(t, other)
}

func TestMemoryResetStoreForgetsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResetStore()

	first, err := store.MarkUsed(ctx, "short-lived", time.Millisecond)
	require.NoError(t, err)
	require.True(t, first)

	time.Sleep(5 * time.Millisecond)

	reusable, err := store.MarkUsed(ctx, "short-lived", time.Minute)
	require.NoError(t, err)
	require.True(t, reusable)
}

func TestResetKeyHidesTokenValue(t *testing.T) {
	key := resetKey("super-secret-token")
	require.NotContains(t, key, "super-secret-token")
	require.Contains(t, key, "reset:used:")
}
