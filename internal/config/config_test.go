package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 10000, cfg.Cache.Size)
	assert.Equal(t, 30*time.Minute, cfg.Cache.NearestTTL)
	assert.Equal(t, 24*time.Hour, cfg.Cache.DetailsTTL)
	assert.Equal(t, "data/stores.json", cfg.Seed.File)
	assert.True(t, cfg.Seed.OnStartup)
	assert.Equal(t, 30*time.Second, cfg.Seed.RetryInterval)
	assert.Equal(t, 10, cfg.Seed.RetryAttempts)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("NEAREST_CACHE_TTL", "60")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("SEED_ON_STARTUP", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, time.Minute, cfg.Cache.NearestTTL)
	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
	assert.False(t, cfg.Seed.OnStartup)
}

func TestLoad_RejectsUnknownCacheBackend(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported CACHE_BACKEND")
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", DBName: "stores", SSLMode: "disable",
	}}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=stores sslmode=disable", cfg.GetDatabaseDSN())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
