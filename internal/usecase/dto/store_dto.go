package dto

import (
	"time"

	"github.com/store-locator/internal/domain"
)

// DefaultNearestLimit is used when the caller does not pass a limit.
const DefaultNearestLimit = 5

// NearestStoresRequest - параметры запроса ближайших магазинов
type NearestStoresRequest struct {
	Latitude  *float64 `query:"latitude" validate:"required"`
	Longitude *float64 `query:"longitude" validate:"required"`
	Limit     *int     `query:"limit"`
}

// LimitOrDefault returns the requested limit or DefaultNearestLimit.
func (r NearestStoresRequest) LimitOrDefault() int {
	if r.Limit == nil {
		return DefaultNearestLimit
	}
	return *r.Limit
}

// StoreResponse - магазин с расстоянием до точки запроса
type StoreResponse struct {
	StoreID           int64     `json:"storeId"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	PostalCode        string    `json:"postalCode"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	DistanceInKm      float64   `json:"distanceInKm"`
	DistanceInMeters  int       `json:"distanceInMeters"`
	OpeningHours      string    `json:"openingHours"`
	ClosingHours      string    `json:"closingHours"`
	IsCollectionPoint bool      `json:"isCollectionPoint"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// ConvertStoreResponse shapes a store with (already normalized) distance for the API.
func ConvertStoreResponse(sw domain.StoreWithDistance, now time.Time) StoreResponse {
	s := sw.Store
	return StoreResponse{
		StoreID:           s.ID,
		Name:              s.Name,
		Address:           s.Address.Formatted(),
		City:              s.Address.City,
		PostalCode:        s.Address.PostalCode,
		Latitude:          s.Coordinates.Latitude,
		Longitude:         s.Coordinates.Longitude,
		DistanceInKm:      sw.DistanceInKm,
		DistanceInMeters:  sw.DistanceInMeters,
		OpeningHours:      s.OpeningHours.Open,
		ClosingHours:      s.OpeningHours.Close,
		IsCollectionPoint: s.IsCollectionPoint,
		LastUpdated:       now,
	}
}
