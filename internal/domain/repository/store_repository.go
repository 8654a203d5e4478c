package repository

import (
	"context"

	"github.com/store-locator/internal/domain"
)

// StoreRepository is the spatially indexed store catalog.
// Implementations return only errors from internal/pkg/errors.
type StoreRepository interface {
	// Count returns the number of stores in the catalog
	Count(ctx context.Context) (int64, error)

	// FindByID returns the store or a ResourceNotFoundError
	FindByID(ctx context.Context, id int64) (*domain.Store, error)

	// FindNearest returns at most limit stores ordered by ascending geodesic distance
	FindNearest(ctx context.Context, coords domain.GeoCoordinates, limit int) ([]domain.StoreWithDistance, error)

	// SaveAll persists the whole batch or nothing
	SaveAll(ctx context.Context, stores []domain.Store) ([]domain.Store, error)
}

// StoreLoader reads the static seed dataset.
type StoreLoader interface {
	LoadStores(ctx context.Context) ([]domain.Store, error)
}
