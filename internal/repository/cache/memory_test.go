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

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache(10, 0, time.Now, nil)

	val, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, c.Set(ctx, "stores:nearest:52.37:4.9:5", []byte(`[{"storeId":1}]`), 0))

	val, err = c.Get(ctx, "stores:nearest:52.37:4.9:5")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"storeId":1}]`), val)

	require.NoError(t, c.Delete(ctx, "stores:nearest:52.37:4.9:5"))
	val, err = c.Get(ctx, "stores:nearest:52.37:4.9:5")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestMemoryCache_PerEntryTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	c := newMemoryCache(10, 0, clock.Now, nil)

	require.NoError(t, c.Set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, "forever", []byte("b"), 0))

	clock.Advance(59 * time.Second)
	val, _ := c.Get(ctx, "short")
	assert.Equal(t, []byte("a"), val)

	clock.Advance(time.Second)
	val, _ = c.Get(ctx, "short")
	assert.Nil(t, val, "entry must expire once its ttl elapsed")

	val, _ = c.Get(ctx, "forever")
	assert.Equal(t, []byte("b"), val)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache(2, 0, time.Now, nil)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	// touch "a" so "b" becomes the eviction candidate
	_, _ = c.Get(ctx, "a")
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 0))

	val, _ := c.Get(ctx, "b")
	assert.Nil(t, val)
	val, _ = c.Get(ctx, "a")
	assert.Equal(t, []byte("1"), val)
	val, _ = c.Get(ctx, "c")
	assert.Equal(t, []byte("3"), val)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache(0, 0, time.Now, nil)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key-%d", i%20)
				_ = c.Set(ctx, key, []byte(key), time.Minute)
				if val, err := c.Get(ctx, key); err == nil && val != nil {
					assert.Equal(t, key, string(val))
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 20, c.Len())
}
