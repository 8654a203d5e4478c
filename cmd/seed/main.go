package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/store-locator/internal/config"
	"github.com/store-locator/internal/pkg/logger"
	"github.com/store-locator/internal/repository/postgres"
	"github.com/store-locator/internal/repository/seed"
	"github.com/store-locator/internal/usecase"
)

// seed - одноразовая загрузка каталога магазинов в пустую базу.
// Завершается с кодом 1, если загрузка не удалась.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	file := flag.String("file", cfg.Seed.File, "path to the stores JSON dataset")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall seeding timeout")
	flag.Parse()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(log, cfg, *file, *timeout))
}

func run(log *zap.Logger, cfg *config.Config, file string, timeout time.Duration) int {
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Error("Failed to connect to PostgreSQL", zap.Error(err))
		return 1
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Error("Failed to prepare database schema", zap.Error(err))
		return 1
	}

	bootstrapper := usecase.NewCatalogBootstrapper(
		postgres.NewStoreRepository(db),
		seed.NewJSONLoader(file, log),
		log,
	)

	inserted, err := bootstrapper.Run(ctx)
	if err != nil {
		log.Error("Seeding failed", zap.String("file", file), zap.Error(err))
		return 1
	}

	log.Info("Seeding finished", zap.String("file", file), zap.Int("inserted", inserted))
	return 0
}
