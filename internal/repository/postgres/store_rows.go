package postgres

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/store-locator/internal/domain"
)

const storeColumns = `
	s.store_id,
	s.address_name,
	s.street,
	s.street2,
	s.street3,
	s.city,
	s.postal_code,
	s.latitude,
	s.longitude,
	s.today_open,
	s.today_close,
	s.location_type,
	s.collection_point`

type storeRow struct {
	StoreID         int64          `db:"store_id"`
	AddressName     string         `db:"address_name"`
	Street          string         `db:"street"`
	Street2         sql.NullString `db:"street2"`
	Street3         sql.NullString `db:"street3"`
	City            string         `db:"city"`
	PostalCode      string         `db:"postal_code"`
	Latitude        float64        `db:"latitude"`
	Longitude       float64        `db:"longitude"`
	TodayOpen       string         `db:"today_open"`
	TodayClose      string         `db:"today_close"`
	LocationType    string         `db:"location_type"`
	CollectionPoint bool           `db:"collection_point"`
}

type storeDistanceRow struct {
	storeRow
	Distance float64 `db:"distance"`
}

func (r storeRow) toDomain() domain.Store {
	return domain.Store{
		ID:   r.StoreID,
		Name: r.AddressName,
		Address: domain.Address{
			Street:     r.Street,
			Street2:    r.Street2.String,
			Street3:    r.Street3.String,
			City:       r.City,
			PostalCode: r.PostalCode,
		},
		// rows were range checked on insert, so no re-validation here
		Coordinates: domain.GeoCoordinates{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
		OpeningHours: domain.OpeningHours{
			Open:  r.TodayOpen,
			Close: r.TodayClose,
		},
		LocationType:      r.LocationType,
		IsCollectionPoint: r.CollectionPoint,
	}
}

// storeBatch holds one column slice per inserted field, for a single
// INSERT ... SELECT FROM unnest(...) round trip.
type storeBatch struct {
	storeIDs         []int64
	uuids            []string
	names            []string
	streets          []string
	streets2         []string
	streets3         []string
	cities           []string
	postalCodes      []string
	latitudes        []float64
	longitudes       []float64
	opens            []string
	closes           []string
	locationTypes    []string
	collectionPoints []bool
}

func newStoreBatch(stores []domain.Store) *storeBatch {
	n := len(stores)
	b := &storeBatch{
		storeIDs:         make([]int64, 0, n),
		uuids:            make([]string, 0, n),
		names:            make([]string, 0, n),
		streets:          make([]string, 0, n),
		streets2:         make([]string, 0, n),
		streets3:         make([]string, 0, n),
		cities:           make([]string, 0, n),
		postalCodes:      make([]string, 0, n),
		latitudes:        make([]float64, 0, n),
		longitudes:       make([]float64, 0, n),
		opens:            make([]string, 0, n),
		closes:           make([]string, 0, n),
		locationTypes:    make([]string, 0, n),
		collectionPoints: make([]bool, 0, n),
	}
	for _, s := range stores {
		b.storeIDs = append(b.storeIDs, s.ID)
		b.uuids = append(b.uuids, uuid.NewString())
		b.names = append(b.names, s.Name)
		b.streets = append(b.streets, s.Address.Street)
		b.streets2 = append(b.streets2, strings.TrimSpace(s.Address.Street2))
		b.streets3 = append(b.streets3, strings.TrimSpace(s.Address.Street3))
		b.cities = append(b.cities, s.Address.City)
		b.postalCodes = append(b.postalCodes, s.Address.PostalCode)
		b.latitudes = append(b.latitudes, s.Coordinates.Latitude)
		b.longitudes = append(b.longitudes, s.Coordinates.Longitude)
		b.opens = append(b.opens, s.OpeningHours.Open)
		b.closes = append(b.closes, s.OpeningHours.Close)
		b.locationTypes = append(b.locationTypes, s.LocationType)
		b.collectionPoints = append(b.collectionPoints, s.IsCollectionPoint)
	}
	return b
}

func (b *storeBatch) args() []interface{} {
	return []interface{}{
		pq.Array(b.storeIDs),
		pq.Array(b.uuids),
		pq.Array(b.names),
		pq.Array(b.streets),
		pq.Array(b.streets2),
		pq.Array(b.streets3),
		pq.Array(b.cities),
		pq.Array(b.postalCodes),
		pq.Array(b.latitudes),
		pq.Array(b.longitudes),
		pq.Array(b.opens),
		pq.Array(b.closes),
		pq.Array(b.locationTypes),
		pq.Array(b.collectionPoints),
	}
}

func formatStoreID(id int64) string {
	return strconv.FormatInt(id, 10)
}
