package postgres

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/store-locator/internal/domain"
)

func TestStoreRow_ToDomain(t *testing.T) {
	row := storeRow{
		StoreID:         3605,
		AddressName:     "Jumbo Veghel",
		Street:          "Noordkade",
		Street2:         sql.NullString{String: "12", Valid: true},
		City:            "Veghel",
		PostalCode:      "5461 AJ",
		Latitude:        51.617574,
		Longitude:       5.551835,
		TodayOpen:       "08:00",
		TodayClose:      "21:00",
		LocationType:    "Supermarkt",
		CollectionPoint: true,
	}

	store := row.toDomain()

	assert.Equal(t, int64(3605), store.ID)
	assert.Equal(t, "Jumbo Veghel", store.Name)
	assert.Equal(t, "Noordkade 12", store.Address.Formatted())
	assert.Empty(t, store.Address.Street3)
	assert.Equal(t, 51.617574, store.Coordinates.Latitude)
	assert.Equal(t, "21:00", store.OpeningHours.Close)
	assert.True(t, store.IsCollectionPoint)
}

func TestDistanceRowToDomain_CarriesRawDistance(t *testing.T) {
	sw := distanceRowToDomain(storeDistanceRow{
		storeRow: storeRow{StoreID: 1},
		Distance: 2500.75,
	})

	assert.Equal(t, 2500.75, sw.RawDistanceMeters)
	assert.Zero(t, sw.DistanceInKm)
	assert.Zero(t, sw.DistanceInMeters)
}

func TestNewStoreBatch(t *testing.T) {
	stores := []domain.Store{
		{
			ID:          1,
			Name:        "A",
			Address:     domain.Address{Street: "Kerkstraat", Street2: "  ", City: "Utrecht", PostalCode: "3511"},
			Coordinates: domain.GeoCoordinates{Latitude: 52.09, Longitude: 5.12},
		},
		{
			ID:                2,
			Name:              "B",
			Address:           domain.Address{Street: "Dam", Street3: "1", City: "Amsterdam"},
			Coordinates:       domain.GeoCoordinates{Latitude: 52.37, Longitude: 4.89},
			IsCollectionPoint: true,
		},
	}

	batch := newStoreBatch(stores)

	assert.Equal(t, []int64{1, 2}, batch.storeIDs)
	assert.Equal(t, []string{"", ""}, batch.streets2)
	assert.Equal(t, []string{"", "1"}, batch.streets3)
	assert.Equal(t, []float64{52.09, 52.37}, batch.latitudes)
	assert.Equal(t, []float64{5.12, 4.89}, batch.longitudes)
	assert.Equal(t, []bool{false, true}, batch.collectionPoints)
	require.Len(t, batch.uuids, 2)
	for _, id := range batch.uuids {
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, batch.uuids[0], batch.uuids[1])

	args := batch.args()
	assert.Len(t, args, 14)
}
