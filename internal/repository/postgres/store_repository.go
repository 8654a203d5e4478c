package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/store-locator/internal/domain"
	"github.com/store-locator/internal/domain/repository"
	pkgerrors "github.com/store-locator/internal/pkg/errors"
	"github.com/store-locator/internal/pkg/metrics"
	"go.uber.org/zap"
)

var (
	storeByIDQuery = fmt.Sprintf(`
		SELECT %s
		FROM %s s
		WHERE s.store_id = $1
		LIMIT 1
	`, storeColumns, storesTable)

	// ST_Distance on geography is the spheroidal (geodesic) distance in meters.
	nearestStoresQuery = fmt.Sprintf(`
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), %d)::geography AS geom
		)
		SELECT %s,
			ST_Distance(s.location, point.geom) AS distance
		FROM %s s, point
		ORDER BY distance
		LIMIT $3
	`, SRID4326, storeColumns, storesTable)

	insertStoresQuery = fmt.Sprintf(`
		INSERT INTO %s (
			store_id, uuid, address_name, street, street2, street3, city, postal_code,
			latitude, longitude, location, complex_number, sap_store_id,
			today_open, today_close, location_type, collection_point
		)
		SELECT
			t.store_id, t.uuid, t.address_name, t.street,
			NULLIF(t.street2, ''), NULLIF(t.street3, ''),
			t.city, t.postal_code, t.latitude, t.longitude,
			ST_SetSRID(ST_MakePoint(t.longitude, t.latitude), %d)::geography,
			t.store_id::text, t.store_id::text,
			t.today_open, t.today_close, t.location_type, t.collection_point
		FROM unnest(
			$1::bigint[], $2::uuid[], $3::text[], $4::text[], $5::text[], $6::text[], $7::text[],
			$8::text[], $9::double precision[], $10::double precision[], $11::text[], $12::text[],
			$13::text[], $14::boolean[]
		) AS t(
			store_id, uuid, address_name, street, street2, street3, city,
			postal_code, latitude, longitude, today_open, today_close,
			location_type, collection_point
		)
	`, storesTable, SRID4326)
)

// SRID4326 is WGS84.
const SRID4326 = 4326

type storeRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStoreRepository создает PostGIS репозиторий каталога магазинов
func NewStoreRepository(db *DB) repository.StoreRepository {
	return &storeRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *storeRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreQuery("count", time.Now())

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+storesTable); err != nil {
		r.logger.Error("Error counting stores", zap.Error(err))
		return 0, pkgerrors.NewDataAccess("Failed to count stores in database", err)
	}
	return count, nil
}

func (r *storeRepository) FindByID(ctx context.Context, id int64) (*domain.Store, error) {
	defer metrics.ObserveStoreQuery("find_by_id", time.Now())

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var row storeRow
	err := r.db.QueryRowxContext(ctx, storeByIDQuery, id).StructScan(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.NewResourceNotFound("Store", formatStoreID(id))
	}
	if err != nil {
		r.logger.Error("Error finding store by id", zap.Int64("store_id", id), zap.Error(err))
		return nil, pkgerrors.NewDataAccess("Failed to retrieve store from database", err)
	}

	store := row.toDomain()
	return &store, nil
}

func (r *storeRepository) FindNearest(
	ctx context.Context,
	coords domain.GeoCoordinates,
	limit int,
) ([]domain.StoreWithDistance, error) {
	defer metrics.ObserveStoreQuery("find_nearest", time.Now())

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryxContext(ctx, nearestStoresQuery, coords.Longitude, coords.Latitude, limit)
	if err != nil {
		r.logger.Error("Error finding nearest stores",
			zap.Float64("lat", coords.Latitude),
			zap.Float64("lon", coords.Longitude),
			zap.Error(err),
		)
		return nil, pkgerrors.NewDataAccess("Failed to retrieve stores from database", err)
	}
	defer rows.Close()

	result := make([]domain.StoreWithDistance, 0, limit)
	for rows.Next() {
		var row storeDistanceRow
		if err := rows.StructScan(&row); err != nil {
			r.logger.Error("Error scanning nearest store row", zap.Error(err))
			return nil, pkgerrors.NewDataAccess("Failed to retrieve stores from database", err)
		}
		result = append(result, distanceRowToDomain(row))
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating nearest stores", zap.Error(err))
		return nil, pkgerrors.NewDataAccess("Failed to retrieve stores from database", err)
	}

	return result, nil
}

func (r *storeRepository) SaveAll(ctx context.Context, stores []domain.Store) ([]domain.Store, error) {
	defer metrics.ObserveStoreQuery("save_all", time.Now())

	if len(stores) == 0 {
		return []domain.Store{}, nil
	}

	batch := newStoreBatch(stores)

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, insertStoresQuery, batch.args()...)
		return err
	})
	if err != nil {
		r.logger.Error("Error saving stores", zap.Int("count", len(stores)), zap.Error(err))
		return nil, pkgerrors.NewDataAccess("Failed to save stores to database", err)
	}

	saved := make([]domain.Store, len(stores))
	copy(saved, stores)

	r.logger.Info("Stores saved", zap.Int("count", len(saved)))
	return saved, nil
}

func (r *storeRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Warn("Rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// distanceRowToDomain carries the raw index distance; normalization happens in the use case.
func distanceRowToDomain(row storeDistanceRow) domain.StoreWithDistance {
	return domain.StoreWithDistance{
		Store:             row.toDomain(),
		RawDistanceMeters: row.Distance,
	}
}
