package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrLatitudeOutOfRange  = errors.New("latitude must be between -90 and 90")
	ErrLongitudeOutOfRange = errors.New("longitude must be between -180 and 180")
)

// GeoCoordinates is a WGS84 point. Use NewGeoCoordinates to construct one.
type GeoCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewGeoCoordinates validates the ranges before returning the point.
func NewGeoCoordinates(lat, lon float64) (GeoCoordinates, error) {
	if !(lat >= -90 && lat <= 90) {
		return GeoCoordinates{}, ErrLatitudeOutOfRange
	}
	if !(lon >= -180 && lon <= 180) {
		return GeoCoordinates{}, ErrLongitudeOutOfRange
	}
	return GeoCoordinates{Latitude: lat, Longitude: lon}, nil
}

// ParseGeoCoordinates parses decimal strings as found in the seed dataset.
func ParseGeoCoordinates(lat, lon string) (GeoCoordinates, error) {
	latVal, latErr := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	lonVal, lonErr := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if latErr != nil || lonErr != nil {
		return GeoCoordinates{}, fmt.Errorf("invalid coordinate format: lat=%s, lon=%s", lat, lon)
	}
	return NewGeoCoordinates(latVal, lonVal)
}

type Address struct {
	Street     string `json:"street"`
	Street2    string `json:"street2,omitempty"`
	Street3    string `json:"street3,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// Formatted joins the non-blank street lines with single spaces.
func (a Address) Formatted() string {
	parts := make([]string, 0, 3)
	for _, line := range []string{a.Street, a.Street2, a.Street3} {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

type OpeningHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Store struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	Address           Address        `json:"address"`
	Coordinates       GeoCoordinates `json:"coordinates"`
	OpeningHours      OpeningHours   `json:"opening_hours"`
	LocationType      string         `json:"location_type"`
	IsCollectionPoint bool           `json:"is_collection_point"`
}

// StoreWithDistance pairs a store with its distance from a query point.
// Repositories fill RawDistanceMeters; DistanceInKm and DistanceInMeters are
// derived from it. All three are zero when the store was fetched by ID.
type StoreWithDistance struct {
	Store             Store   `json:"store"`
	DistanceInKm      float64 `json:"distance_in_km"`
	DistanceInMeters  int     `json:"distance_in_meters"`
	RawDistanceMeters float64 `json:"-"`
}
