package errors_test

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/store-locator/internal/pkg/errors"
)

func TestToAppError(t *testing.T) {
	lat, lon := 95.0, 4.9
	dbCause := stderrors.New("pq: connection refused on 10.0.0.3")

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails map[string]interface{}
	}{
		{
			name:        "not found",
			err:         pkgerrors.NewResourceNotFound("Store", "42"),
			wantStatus:  http.StatusNotFound,
			wantCode:    pkgerrors.CodeResourceNotFound,
			wantMessage: "Store with ID 42 not found",
			wantDetails: map[string]interface{}{"resource_type": "Store", "identifier": "42"},
		},
		{
			name:        "validation",
			err:         pkgerrors.NewValidation("limit", 0, "Limit must be between 1 and 20"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    pkgerrors.CodeValidation,
			wantMessage: "Limit must be between 1 and 20 (field: limit)",
			wantDetails: map[string]interface{}{"field": "limit", "invalid_value": 0},
		},
		{
			name:        "geospatial",
			err:         pkgerrors.NewGeospatial("Point outside catalog area", &lat, &lon),
			wantStatus:  http.StatusBadRequest,
			wantCode:    pkgerrors.CodeGeospatial,
			wantMessage: "Point outside catalog area",
			wantDetails: map[string]interface{}{"latitude": 95.0, "longitude": 4.9},
		},
		{
			name:        "data access hides cause",
			err:         pkgerrors.NewDataAccess("Failed to count stores in database", dbCause),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    pkgerrors.CodeDataAccess,
			wantMessage: "A database error occurred while processing your request",
		},
		{
			name:        "unexpected hides cause",
			err:         pkgerrors.NewUnexpected("", stderrors.New("boom")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    pkgerrors.CodeUnexpected,
			wantMessage: "An unexpected error occurred while processing your request",
		},
		{
			name:        "wrapped domain error",
			err:         fmt.Errorf("handler: %w", pkgerrors.NewResourceNotFound("Store", "7")),
			wantStatus:  http.StatusNotFound,
			wantCode:    pkgerrors.CodeResourceNotFound,
			wantMessage: "Store with ID 7 not found",
			wantDetails: map[string]interface{}{"resource_type": "Store", "identifier": "7"},
		},
		{
			name:        "plain error",
			err:         stderrors.New("something odd"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    pkgerrors.CodeUnexpected,
			wantMessage: "An unexpected error occurred while processing your request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := pkgerrors.ToAppError(tt.err)
			require.NotNil(t, appErr)

			assert.Equal(t, tt.wantStatus, appErr.StatusCode)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantMessage, appErr.Message)
			if tt.wantDetails != nil {
				assert.Equal(t, tt.wantDetails, appErr.Details)
			}
			assert.NotContains(t, appErr.Message, "10.0.0.3")
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, pkgerrors.KindResourceNotFound, pkgerrors.KindOf(pkgerrors.NewResourceNotFound("Store", "1")))
	assert.Equal(t, pkgerrors.KindValidation, pkgerrors.KindOf(pkgerrors.NewValidation("storeId", int64(-1), "Store ID must be positive")))
	assert.Equal(t, pkgerrors.KindDataAccess, pkgerrors.KindOf(fmt.Errorf("wrapped: %w", pkgerrors.NewDataAccess("x", nil))))
	assert.Equal(t, pkgerrors.KindUnexpected, pkgerrors.KindOf(stderrors.New("raw")))
}

func TestDataAccessError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("driver failure")
	err := pkgerrors.NewDataAccess("Failed to save stores to database", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to save stores to database: driver failure", err.Error())
}

func TestWithDetails_DoesNotMutatePreset(t *testing.T) {
	withDetails := pkgerrors.ErrInvalidRequest.WithDetails(map[string]interface{}{"param": "latitude"})

	assert.Equal(t, "latitude", withDetails.Details["param"])
	assert.Empty(t, pkgerrors.ErrInvalidRequest.Details)
}

func TestToAppError_NonFiniteValuesStayEncodable(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(-1)

	for _, tc := range []struct {
		name string
		err  error
		key  string
		want string
	}{
		{"validation NaN", pkgerrors.NewValidation("coordinates", math.NaN(), "Latitude must be between -90 and 90"), "invalid_value", "NaN"},
		{"validation +Inf", pkgerrors.NewValidation("coordinates", math.Inf(1), "Longitude must be between -180 and 180"), "invalid_value", "+Inf"},
		{"geospatial", pkgerrors.NewGeospatial("bad point", &nan, &inf), "longitude", "-Inf"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			appErr := pkgerrors.ToAppError(tc.err)
			assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
			assert.Equal(t, tc.want, appErr.Details[tc.key])

			_, err := json.Marshal(appErr)
			require.NoError(t, err)
		})
	}
}
