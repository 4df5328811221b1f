package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemory_SetGet(t *testing.T) {
	c := NewInMemory[[]string]("listings", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	c.Set(ctx, "v1:n0", []string{"/a", "/b"}, 0)

	got, ok := c.Get(ctx, "v1:n0")
	require.True(t, ok)
	require.Equal(t, []string{"/a", "/b"}, got)
	require.Equal(t, 1, c.Len())
}

func TestInMemory_Miss(t *testing.T) {
	c := NewInMemory[string]("test", DefaultExpiration, DefaultCleanupInterval)

	got, ok := c.Get(context.Background(), "missing")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemory_Expiry(t *testing.T) {
	c := NewInMemory[string]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	c.Set(ctx, "k", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(ctx, "k")
	require.False(t, ok)
}

func TestInMemory_DeleteAndFlush(t *testing.T) {
	c := NewInMemory[int]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	c.Set(ctx, "a", 1, 0)
	c.Set(ctx, "b", 2, 0)
	c.Set(ctx, "c", 3, 0)

	c.Delete(ctx, "a", "b")
	_, ok := c.Get(ctx, "a")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())

	c.Flush(ctx)
	require.Zero(t, c.Len())
}
