package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory(WithCleanupInterval(0))
	defer m.Close()
	ctx := context.Background()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", []byte("v1"), time.Minute))
	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got)
}

func TestMemoryTTLExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	m := NewMemory(WithClock(clock), WithCleanupInterval(0))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 10*time.Second))

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok, "fresh entry should be visible")

	advance(9 * time.Second)
	_, ok, _ = m.Get(ctx, "k")
	assert.True(t, ok, "entry should survive until the TTL elapses")

	// Exactly at storedAt+ttl the entry is already considered absent.
	advance(1 * time.Second)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok, "entry at TTL boundary should be gone")
	assert.Equal(t, 0, m.Len(), "expired entry should be purged on access")
}

func TestMemoryReplaceResetsClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	m := NewMemory(WithClock(clock), WithCleanupInterval(0))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("old"), 10*time.Second))
	now = now.Add(8 * time.Second)
	require.NoError(t, m.Set(ctx, "k", []byte("new"), 10*time.Second))

	// 12s after the first Set, 4s after the second: the replace reset the clock.
	now = now.Add(4 * time.Second)
	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory(WithCleanupInterval(0))
	defer m.Close()
	ctx := context.Background()

	old := []byte("old-value")
	updated := []byte("new-value")
	require.NoError(t, m.Set(ctx, "k", old, time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Set(ctx, "k", updated, time.Minute)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, ok, err := m.Get(ctx, "k")
			assert.NoError(t, err)
			if ok {
				// A reader sees one full value or the other, never a mix.
				assert.Contains(t, [][]byte{old, updated}, got)
			}
		}()
	}
	wg.Wait()

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, updated, got)
}

func TestMemoryLRUEviction(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	m := NewMemory(WithMaxSize(3), WithClock(clock), WithCleanupInterval(0))
	defer m.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), 0))
		now = now.Add(time.Second)
	}

	// Touch k0 so k1 becomes the least recently used.
	_, _, _ = m.Get(ctx, "k0")
	now = now.Add(time.Second)

	require.NoError(t, m.Set(ctx, "k3", []byte("v"), 0))

	_, ok, _ := m.Get(ctx, "k1")
	assert.False(t, ok, "LRU entry should be evicted")
	_, ok, _ = m.Get(ctx, "k0")
	assert.True(t, ok)
	_, ok, _ = m.Get(ctx, "k3")
	assert.True(t, ok)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory(WithCleanupInterval(0))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, m.Delete(ctx, "a", "b"))
	assert.Equal(t, 0, m.Len())
}

func TestGetJSONRoundTrip(t *testing.T) {
	m := NewMemory(WithCleanupInterval(0))
	defer m.Close()
	ctx := context.Background()

	type payload struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}

	require.NoError(t, SetJSON(ctx, m, Key("stock", "AAPL"), payload{Symbol: "AAPL", Price: 150}, time.Minute))

	got, ok, err := GetJSON[payload](ctx, m, "stock_AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, 150.0, got.Price)
}
