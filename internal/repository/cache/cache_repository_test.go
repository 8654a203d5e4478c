package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/store-locator/internal/repository/cache"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	return client
}

func TestCacheRepository_Redis(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	repo := cache.NewCacheRepository(cache.NewRedisFromClient(client, zap.NewNop()), "test-store-locator")

	key := "stores:details:4241"
	defer client.Del(ctx, "test-store-locator:"+key)

	val, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, val, "expected a miss before Set")

	require.NoError(t, repo.Set(ctx, key, []byte(`{"storeId":4241}`), time.Minute))

	val, err = repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"storeId":4241}`, string(val))

	ttl, err := client.TTL(ctx, "test-store-locator:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Delete(ctx, key))
	val, err = repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, val)
}
