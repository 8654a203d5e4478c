package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/store-locator/internal/domain"
)

// MockStoreRepository is a mock of StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id int64) (*domain.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *MockStoreRepository) FindNearest(ctx context.Context, coords domain.GeoCoordinates, limit int) ([]domain.StoreWithDistance, error) {
	args := m.Called(ctx, coords, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoreWithDistance), args.Error(1)
}

func (m *MockStoreRepository) SaveAll(ctx context.Context, stores []domain.Store) ([]domain.Store, error) {
	args := m.Called(ctx, stores)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Store), args.Error(1)
}

// MockStoreLoader is a mock of StoreLoader
type MockStoreLoader struct {
	mock.Mock
}

func (m *MockStoreLoader) LoadStores(ctx context.Context) ([]domain.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Store), args.Error(1)
}

func testStore(id int64, lat, lon float64) domain.Store {
	return domain.Store{
		ID:   id,
		Name: "Jumbo Store",
		Address: domain.Address{
			Street:     "Kerkstraat",
			Street2:    "12",
			City:       "Utrecht",
			PostalCode: "3511 AB",
		},
		Coordinates:       domain.GeoCoordinates{Latitude: lat, Longitude: lon},
		OpeningHours:      domain.OpeningHours{Open: "08:00", Close: "21:00"},
		LocationType:      "SupermarktPuP",
		IsCollectionPoint: true,
	}
}
