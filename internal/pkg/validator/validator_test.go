package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/store-locator/internal/pkg/errors"
)

type queryRequest struct {
	Latitude *float64 `query:"latitude" validate:"required"`
	Limit    int      `query:"limit" validate:"min=1,max=20"`
}

type jsonRecord struct {
	City      string `json:"city" validate:"required"`
	Latitude  string `json:"latitude" validate:"required,numeric"`
	Ignored   string `json:"-"`
	GoNameTag string
}

func TestValidate_UsesTagNames(t *testing.T) {
	lat := 52.0

	err := Validate(&queryRequest{Limit: 5})
	var vErr *pkgerrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "latitude", vErr.Field)
	assert.Equal(t, "Parameter latitude is required", vErr.Message)
	assert.Nil(t, vErr.InvalidValue)

	err = Validate(&queryRequest{Latitude: &lat, Limit: 30})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "limit", vErr.Field)
	assert.Equal(t, 30, vErr.InvalidValue)

	assert.NoError(t, Validate(&queryRequest{Latitude: &lat, Limit: 20}))
}

func TestValidate_JSONRecord(t *testing.T) {
	err := Validate(&jsonRecord{City: "Utrecht", Latitude: "abc"})

	var vErr *pkgerrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "latitude", vErr.Field)
	assert.Equal(t, "abc", vErr.InvalidValue)
	assert.Equal(t, "Parameter latitude must be numeric", vErr.Message)

	assert.NoError(t, Validate(&jsonRecord{City: "Utrecht", Latitude: "52.1"}))
}
