package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Seed     SeedConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig controls the response cache. A zero TTL disables expiry,
// a zero Size leaves the in-process cache unbounded.
type CacheConfig struct {
	Backend    string
	Size       int
	NearestTTL time.Duration
	DetailsTTL time.Duration
	KeyPrefix  string
}

// SeedConfig controls the catalog bootstrap. RetryAttempts <= 0 disables
// background retries after a failed startup bootstrap.
type SeedConfig struct {
	File          string
	OnStartup     bool
	RetryInterval time.Duration
	RetryAttempts int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
			QueryTimeout:    time.Duration(v.GetInt("DB_QUERY_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Backend:    strings.ToLower(strings.TrimSpace(v.GetString("CACHE_BACKEND"))),
			Size:       v.GetInt("CACHE_SIZE"),
			NearestTTL: time.Duration(v.GetInt("NEAREST_CACHE_TTL")) * time.Second,
			DetailsTTL: time.Duration(v.GetInt("DETAILS_CACHE_TTL")) * time.Second,
			KeyPrefix:  v.GetString("CACHE_KEY_PREFIX"),
		},
		Seed: SeedConfig{
			File:          v.GetString("SEED_FILE"),
			OnStartup:     v.GetBool("SEED_ON_STARTUP"),
			RetryInterval: time.Duration(v.GetInt("SEED_RETRY_INTERVAL")) * time.Second,
			RetryAttempts: v.GetInt("SEED_RETRY_ATTEMPTS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "store_locator")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("DB_QUERY_TIMEOUT", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("CACHE_BACKEND", CacheBackendMemory)
	v.SetDefault("CACHE_SIZE", 10000)
	v.SetDefault("NEAREST_CACHE_TTL", 1800)
	v.SetDefault("DETAILS_CACHE_TTL", 86400)
	v.SetDefault("CACHE_KEY_PREFIX", "store-locator")

	v.SetDefault("SEED_FILE", "data/stores.json")
	v.SetDefault("SEED_ON_STARTUP", true)
	v.SetDefault("SEED_RETRY_INTERVAL", 30)
	v.SetDefault("SEED_RETRY_ATTEMPTS", 10)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q (expected %q or %q)",
			c.Cache.Backend, CacheBackendMemory, CacheBackendRedis)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("CACHE_SIZE must not be negative, got %d", c.Cache.Size)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("API_PORT must be positive, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - строка подключения в формате key=value для pgx
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
