package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/store-locator/internal/domain/repository"
	"github.com/store-locator/internal/pkg/metrics"
)

// CatalogBootstrapper seeds an empty catalog from the static dataset.
// A populated catalog is never touched.
type CatalogBootstrapper struct {
	storeRepo repository.StoreRepository
	loader    repository.StoreLoader
	logger    *zap.Logger
}

func NewCatalogBootstrapper(
	storeRepo repository.StoreRepository,
	loader repository.StoreLoader,
	logger *zap.Logger,
) *CatalogBootstrapper {
	return &CatalogBootstrapper{
		storeRepo: storeRepo,
		loader:    loader,
		logger:    logger,
	}
}

// Run returns the number of stores inserted. Errors are logged here as well;
// the caller decides whether they are fatal.
func (b *CatalogBootstrapper) Run(ctx context.Context) (int, error) {
	count, err := b.storeRepo.Count(ctx)
	if err != nil {
		b.logger.Error("Failed to check store count", zap.Error(err))
		metrics.BootstrapFailures.WithLabelValues("count").Inc()
		return 0, err
	}

	if count > 0 {
		b.logger.Info("Found stores, skipping initialization", zap.Int64("count", count))
		return 0, nil
	}

	b.logger.Info("No stores found in database, loading seed dataset")

	stores, err := b.loader.LoadStores(ctx)
	if err != nil {
		b.logger.Error("Failed to load stores", zap.Error(err))
		metrics.BootstrapFailures.WithLabelValues("load").Inc()
		return 0, err
	}

	saved, err := b.storeRepo.SaveAll(ctx, stores)
	if err != nil {
		b.logger.Error("Failed to save stores", zap.Int("count", len(stores)), zap.Error(err))
		metrics.BootstrapFailures.WithLabelValues("save").Inc()
		return 0, err
	}

	metrics.BootstrapSeededStores.Set(float64(len(saved)))
	b.logger.Info("Successfully loaded stores", zap.Int("count", len(saved)))
	return len(saved), nil
}
