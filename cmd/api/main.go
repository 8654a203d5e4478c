package main

// @title Store Locator API
// @version 1.0.0
// @description Поиск ближайших магазинов по координатам и получение деталей магазина.
// @description Расстояния считаются геодезически (PostGIS geography), ответы кешируются.

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/store-locator/docs"
	"github.com/store-locator/internal/config"
	httpDelivery "github.com/store-locator/internal/delivery/http"
	"github.com/store-locator/internal/delivery/http/handler"
	"github.com/store-locator/internal/domain/repository"
	"github.com/store-locator/internal/pkg/logger"
	"github.com/store-locator/internal/repository/cache"
	"github.com/store-locator/internal/repository/postgres"
	"github.com/store-locator/internal/repository/seed"
	"github.com/store-locator/internal/usecase"
	"github.com/store-locator/internal/worker"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Store Locator")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatal("Failed to prepare database schema", zap.Error(err))
	}

	checks := map[string]httpDelivery.HealthChecker{"postgres": db}

	// 4. Response cache
	var cacheRepo repository.CacheRepository
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient, cfg.Cache.KeyPrefix)
		checks["redis"] = redisClient
		log.Info("Redis cache connected")
	default:
		cacheRepo = cache.NewMemoryCacheRepository(cfg.Cache.Size, maxDuration(cfg.Cache.NearestTTL, cfg.Cache.DetailsTTL), log)
		log.Info("In-memory cache initialized", zap.Int("size", cfg.Cache.Size))
	}

	// 5. Repositories and use cases
	storeRepo := postgres.NewStoreRepository(db)

	storeUC := usecase.NewStoreUseCase(
		storeRepo,
		cacheRepo,
		log,
		cfg.Cache.NearestTTL,
		cfg.Cache.DetailsTTL,
	)

	// 6. Catalog bootstrap. Ошибка не останавливает сервис, загрузка повторяется в фоне.
	workers := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workersStarted := false
	if cfg.Seed.OnStartup {
		bootstrapper := usecase.NewCatalogBootstrapper(storeRepo, seed.NewJSONLoader(cfg.Seed.File, log), log)
		if _, err := bootstrapper.Run(ctx); err != nil {
			log.Error("Catalog bootstrap failed, serving with current catalog", zap.Error(err))
			if cfg.Seed.RetryAttempts > 0 {
				workers.Register(worker.NewBootstrapRetryWorker(
					bootstrapper, cfg.Seed.RetryInterval, cfg.Seed.RetryAttempts, log,
				))
			}
		}
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if err := workers.Start(workerCtx); err == nil {
		workersStarted = true
	}

	// 7. HTTP
	storeHandler := handler.NewStoreHandler(storeUC, log)
	server := httpDelivery.NewServer(cfg, log, storeHandler, checks)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workersStarted {
		if err := workers.Stop(); err != nil {
			log.Error("Workers shutdown error", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
