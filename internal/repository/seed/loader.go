package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/store-locator/internal/domain"
	"github.com/store-locator/internal/domain/repository"
	pkgerrors "github.com/store-locator/internal/pkg/errors"
	"github.com/store-locator/internal/pkg/validator"
)

// storesFile - корневой объект файла с магазинами
type storesFile struct {
	Stores []storeRecord `json:"stores" validate:"required,dive"`
}

// storeRecord - запись магазина в исходном формате. Неизвестные поля игнорируются.
type storeRecord struct {
	City               string  `json:"city" validate:"required"`
	PostalCode         string  `json:"postalCode" validate:"required"`
	Street             string  `json:"street" validate:"required"`
	Street2            *string `json:"street2"`
	Street3            *string `json:"street3"`
	AddressName        string  `json:"addressName" validate:"required"`
	Longitude          string  `json:"longitude" validate:"required"`
	Latitude           string  `json:"latitude" validate:"required"`
	ComplexNumber      string  `json:"complexNumber" validate:"required"`
	ShowWarningMessage *bool   `json:"showWarningMessage" validate:"required"`
	TodayOpen          string  `json:"todayOpen" validate:"required"`
	TodayClose         string  `json:"todayClose" validate:"required"`
	LocationType       string  `json:"locationType" validate:"required"`
	CollectionPoint    *bool   `json:"collectionPoint" validate:"required"`
	SapStoreID         string  `json:"sapStoreID" validate:"required"`
	UUID               string  `json:"uuid" validate:"required"`
}

// JSONLoader reads the seed dataset from a JSON file.
type JSONLoader struct {
	path   string
	logger *zap.Logger
}

func NewJSONLoader(path string, logger *zap.Logger) repository.StoreLoader {
	return &JSONLoader{path: path, logger: logger}
}

// LoadStores parses the whole file. A single bad record fails the load.
func (l *JSONLoader) LoadStores(ctx context.Context) ([]domain.Store, error) {
	l.logger.Info("Loading stores from JSON file", zap.String("path", l.path))

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, loadError(err)
	}

	stores, err := Decode(ctx, bytes.NewReader(data))
	if err != nil {
		l.logger.Error("Failed to load stores from JSON file", zap.String("path", l.path), zap.Error(err))
		return nil, err
	}

	l.logger.Info("Successfully parsed stores from JSON", zap.Int("count", len(stores)))
	return stores, nil
}

// Decode parses a seed dataset from r.
func Decode(ctx context.Context, r io.Reader) ([]domain.Store, error) {
	var file storesFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, loadError(err)
	}
	if err := validator.Validate(&file); err != nil {
		return nil, loadError(err)
	}

	stores := make([]domain.Store, 0, len(file.Stores))
	for i, rec := range file.Stores {
		if err := ctx.Err(); err != nil {
			return nil, loadError(err)
		}
		store, err := rec.toDomain()
		if err != nil {
			return nil, loadError(fmt.Errorf("store #%d: %w", i, err))
		}
		stores = append(stores, store)
	}
	return stores, nil
}

func (r storeRecord) toDomain() (domain.Store, error) {
	coords, err := domain.ParseGeoCoordinates(r.Latitude, r.Longitude)
	if err != nil {
		return domain.Store{}, err
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.ComplexNumber), 10, 64)
	if err != nil {
		return domain.Store{}, fmt.Errorf("invalid complexNumber %q: %w", r.ComplexNumber, err)
	}

	return domain.Store{
		ID:   id,
		Name: r.AddressName,
		Address: domain.Address{
			Street:     r.Street,
			Street2:    deref(r.Street2),
			Street3:    deref(r.Street3),
			City:       r.City,
			PostalCode: r.PostalCode,
		},
		Coordinates: coords,
		OpeningHours: domain.OpeningHours{
			Open:  r.TodayOpen,
			Close: r.TodayClose,
		},
		LocationType:      r.LocationType,
		IsCollectionPoint: *r.CollectionPoint,
	}, nil
}

func loadError(err error) error {
	return pkgerrors.NewUnexpected("Failed to load stores from JSON", err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
