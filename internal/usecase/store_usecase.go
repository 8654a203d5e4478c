package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/store-locator/internal/domain"
	"github.com/store-locator/internal/domain/repository"
	pkgerrors "github.com/store-locator/internal/pkg/errors"
	"github.com/store-locator/internal/pkg/metrics"
	"github.com/store-locator/internal/usecase/dto"
)

const (
	opNearest = "nearest_stores"
	opDetails = "store_details"
)

// StoreUseCase - поиск ближайших магазинов и деталей магазина с кешированием ответов
type StoreUseCase struct {
	storeRepo  repository.StoreRepository
	cacheRepo  repository.CacheRepository
	logger     *zap.Logger
	nearestTTL time.Duration
	detailsTTL time.Duration
	now        func() time.Time
}

// NewStoreUseCase - создание нового StoreUseCase
func NewStoreUseCase(
	storeRepo repository.StoreRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	nearestTTL time.Duration,
	detailsTTL time.Duration,
) *StoreUseCase {
	return &StoreUseCase{
		storeRepo:  storeRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
		nearestTTL: nearestTTL,
		detailsTTL: detailsTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the timestamp source used for lastUpdated.
func (uc *StoreUseCase) WithClock(now func() time.Time) *StoreUseCase {
	uc.now = now
	return uc
}

// NearestCacheKey is derived from the exact validated inputs.
func NearestCacheKey(coords domain.GeoCoordinates, limit int) string {
	return fmt.Sprintf("stores:nearest:%s:%s:%d",
		strconv.FormatFloat(coords.Latitude, 'f', -1, 64),
		strconv.FormatFloat(coords.Longitude, 'f', -1, 64),
		limit,
	)
}

// DetailsCacheKey keys a single store lookup.
func DetailsCacheKey(storeID int64) string {
	return "stores:details:" + strconv.FormatInt(storeID, 10)
}

// FindNearestStores - ближайшие магазины к точке, упорядоченные по расстоянию
func (uc *StoreUseCase) FindNearestStores(
	ctx context.Context,
	lat, lon float64,
	limit int,
) ([]dto.StoreResponse, error) {
	coords, limit, err := ValidateNearestQuery(lat, lon, limit)
	if err != nil {
		return nil, err
	}

	key := NearestCacheKey(coords, limit)

	var cached []dto.StoreResponse
	if uc.readCache(ctx, opNearest, key, &cached) {
		return cached, nil
	}

	uc.logger.Info("Finding nearest stores",
		zap.Float64("lat", coords.Latitude),
		zap.Float64("lon", coords.Longitude),
		zap.Int("limit", limit),
	)

	stores, err := uc.storeRepo.FindNearest(ctx, coords, limit)
	if err != nil {
		uc.logger.Error("Failed to find nearest stores", zap.Error(err))
		return nil, err
	}

	now := uc.now()
	result := make([]dto.StoreResponse, 0, len(stores))
	for _, sw := range stores {
		result = append(result, dto.ConvertStoreResponse(normalizeStoreDistance(sw), now))
	}

	uc.writeCache(ctx, opNearest, key, result, uc.nearestTTL)
	return result, nil
}

// GetStoreDetails - магазин по идентификатору (расстояния равны нулю)
func (uc *StoreUseCase) GetStoreDetails(ctx context.Context, storeID int64) (*dto.StoreResponse, error) {
	if err := ValidateStoreID(storeID); err != nil {
		return nil, err
	}

	key := DetailsCacheKey(storeID)

	var cached dto.StoreResponse
	if uc.readCache(ctx, opDetails, key, &cached) {
		return &cached, nil
	}

	uc.logger.Info("Getting store details", zap.Int64("store_id", storeID))

	store, err := uc.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if pkgerrors.KindOf(err) == pkgerrors.KindResourceNotFound {
			return nil, pkgerrors.NewResourceNotFound("Store", strconv.FormatInt(storeID, 10))
		}
		uc.logger.Error("Failed to get store details", zap.Int64("store_id", storeID), zap.Error(err))
		return nil, err
	}
	if store == nil {
		return nil, pkgerrors.NewResourceNotFound("Store", strconv.FormatInt(storeID, 10))
	}

	resp := dto.ConvertStoreResponse(domain.StoreWithDistance{Store: *store}, uc.now())

	uc.writeCache(ctx, opDetails, key, resp, uc.detailsTTL)
	return &resp, nil
}

// readCache decodes a cached payload into dst. Any cache failure counts as a miss.
func (uc *StoreUseCase) readCache(ctx context.Context, op, key string, dst interface{}) bool {
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("Cache read failed, querying store catalog", zap.String("key", key), zap.Error(err))
		metrics.CacheMisses.WithLabelValues(op).Inc()
		return false
	}
	if data == nil {
		metrics.CacheMisses.WithLabelValues(op).Inc()
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		uc.logger.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = uc.cacheRepo.Delete(ctx, key)
		metrics.CacheMisses.WithLabelValues(op).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(op).Inc()
	return true
}

func (uc *StoreUseCase) writeCache(ctx context.Context, op, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		uc.logger.Warn("Failed to encode response for cache", zap.String("operation", op), zap.Error(err))
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, ttl); err != nil {
		uc.logger.Warn("Failed to store response in cache", zap.String("key", key), zap.Error(err))
	}
}
