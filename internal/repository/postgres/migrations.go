package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const storesTable = "stores"

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,
	`CREATE TABLE IF NOT EXISTS stores (
		id                   BIGSERIAL PRIMARY KEY,
		store_id             BIGINT NOT NULL,
		uuid                 UUID NOT NULL,
		address_name         TEXT NOT NULL,
		street               TEXT NOT NULL,
		street2              TEXT,
		street3              TEXT,
		city                 TEXT NOT NULL,
		postal_code          TEXT NOT NULL,
		latitude             DOUBLE PRECISION NOT NULL,
		longitude            DOUBLE PRECISION NOT NULL,
		location             GEOGRAPHY(POINT, 4326) NOT NULL,
		complex_number       TEXT NOT NULL,
		sap_store_id         TEXT,
		show_warning_message BOOLEAN NOT NULL DEFAULT FALSE,
		today_open           TEXT NOT NULL,
		today_close          TEXT NOT NULL,
		location_type        TEXT NOT NULL DEFAULT '',
		collection_point     BOOLEAN NOT NULL DEFAULT FALSE,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_store_store_id ON stores (store_id)`,
	`CREATE INDEX IF NOT EXISTS idx_store_location ON stores USING GIST (location)`,
}

// EnsureSchema creates the PostGIS extension, the stores table and its indexes.
// Every statement is idempotent.
func EnsureSchema(ctx context.Context, db *DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	db.logger.Info("Database schema ensured", zap.String("table", storesTable))
	return nil
}
