package usecase

import (
	"errors"

	"github.com/store-locator/internal/domain"
	pkgerrors "github.com/store-locator/internal/pkg/errors"
)

const (
	MinNearestLimit = 1
	MaxNearestLimit = 20
)

// ValidateNearestQuery checks latitude, longitude and limit in that order and
// reports only the first violation.
func ValidateNearestQuery(lat, lon float64, limit int) (domain.GeoCoordinates, int, error) {
	coords, err := domain.NewGeoCoordinates(lat, lon)
	if err != nil {
		invalid := lat
		if errors.Is(err, domain.ErrLongitudeOutOfRange) {
			invalid = lon
		}
		return domain.GeoCoordinates{}, 0, pkgerrors.NewValidation("coordinates", invalid, capitalize(err.Error()))
	}

	if limit < MinNearestLimit || limit > MaxNearestLimit {
		return domain.GeoCoordinates{}, 0, pkgerrors.NewValidation("limit", limit, "Limit must be between 1 and 20")
	}

	return coords, limit, nil
}

// ValidateStoreID requires a positive catalog number.
func ValidateStoreID(id int64) error {
	if id <= 0 {
		return pkgerrors.NewValidation("storeId", id, "Store ID must be positive")
	}
	return nil
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-('a'-'A')) + s[1:]
}
