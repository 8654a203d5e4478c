package errors

import (
	stderrors "errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
)

// Kind names one member of the closed domain error taxonomy.
type Kind string

const (
	KindResourceNotFound Kind = "ResourceNotFound"
	KindValidation       Kind = "ValidationError"
	KindGeospatial       Kind = "GeospatialError"
	KindDataAccess       Kind = "DataAccessError"
	KindUnexpected       Kind = "UnexpectedError"
)

// DomainError is implemented by every error the store core hands to its callers.
type DomainError interface {
	error
	Kind() Kind
	StatusCode() int
	// PublicMessage is safe to show to API clients.
	PublicMessage() string
}

// ResourceNotFoundError reports a missing entity.
type ResourceNotFoundError struct {
	ResourceType string
	Identifier   string
}

func NewResourceNotFound(resourceType, identifier string) *ResourceNotFoundError {
	return &ResourceNotFoundError{ResourceType: resourceType, Identifier: identifier}
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.ResourceType, e.Identifier)
}

func (e *ResourceNotFoundError) Kind() Kind            { return KindResourceNotFound }
func (e *ResourceNotFoundError) StatusCode() int       { return http.StatusNotFound }
func (e *ResourceNotFoundError) PublicMessage() string { return e.Error() }

// ValidationError reports caller input that violates a constraint.
type ValidationError struct {
	Message      string
	Field        string
	InvalidValue interface{}
}

func NewValidation(field string, invalidValue interface{}, message string) *ValidationError {
	return &ValidationError{Message: message, Field: field, InvalidValue: invalidValue}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (field: %s)", e.Message, e.Field)
}

func (e *ValidationError) Kind() Kind            { return KindValidation }
func (e *ValidationError) StatusCode() int       { return http.StatusBadRequest }
func (e *ValidationError) PublicMessage() string { return e.Error() }

// GeospatialError is reserved for coordinate semantics failures that are not
// plain range violations.
type GeospatialError struct {
	Message   string
	Latitude  *float64
	Longitude *float64
}

func NewGeospatial(message string, lat, lon *float64) *GeospatialError {
	return &GeospatialError{Message: message, Latitude: lat, Longitude: lon}
}

func (e *GeospatialError) Error() string         { return e.Message }
func (e *GeospatialError) Kind() Kind            { return KindGeospatial }
func (e *GeospatialError) StatusCode() int       { return http.StatusBadRequest }
func (e *GeospatialError) PublicMessage() string { return e.Message }

// DataAccessError wraps a backing store fault. The cause never reaches clients.
type DataAccessError struct {
	Message string
	Cause   error
}

func NewDataAccess(message string, cause error) *DataAccessError {
	return &DataAccessError{Message: message, Cause: cause}
}

func (e *DataAccessError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *DataAccessError) Unwrap() error         { return e.Cause }
func (e *DataAccessError) Kind() Kind            { return KindDataAccess }
func (e *DataAccessError) StatusCode() int       { return http.StatusInternalServerError }
func (e *DataAccessError) PublicMessage() string { return msgDataAccess }

// UnexpectedError is the catch-all for faults nothing else classifies.
type UnexpectedError struct {
	Message string
	Cause   error
}

func NewUnexpected(message string, cause error) *UnexpectedError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &UnexpectedError{Message: message, Cause: cause}
}

func (e *UnexpectedError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *UnexpectedError) Unwrap() error         { return e.Cause }
func (e *UnexpectedError) Kind() Kind            { return KindUnexpected }
func (e *UnexpectedError) StatusCode() int       { return http.StatusInternalServerError }
func (e *UnexpectedError) PublicMessage() string { return msgUnexpected }

// KindOf reports the taxonomy kind of err. Errors outside the taxonomy are unexpected.
func KindOf(err error) Kind {
	var de DomainError
	if stderrors.As(err, &de) {
		return de.Kind()
	}
	return KindUnexpected
}

// ToAppError maps any error onto the wire shape. Unclassified errors become 500s
// without leaking their text.
func ToAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var de DomainError
	if !stderrors.As(err, &de) {
		return ErrInternalServer
	}

	out := New(codeFor(de.Kind()), de.PublicMessage(), de.StatusCode())
	switch e := de.(type) {
	case *ResourceNotFoundError:
		out.Details["resource_type"] = e.ResourceType
		out.Details["identifier"] = e.Identifier
	case *ValidationError:
		if e.Field != "" {
			out.Details["field"] = e.Field
		}
		if e.InvalidValue != nil {
			out.Details["invalid_value"] = detailValue(e.InvalidValue)
		}
	case *GeospatialError:
		if e.Latitude != nil {
			out.Details["latitude"] = detailValue(*e.Latitude)
		}
		if e.Longitude != nil {
			out.Details["longitude"] = detailValue(*e.Longitude)
		}
	}
	return out
}

// detailValue keeps details JSON-encodable: NaN and ±Inf are sent as strings.
func detailValue(v interface{}) interface{} {
	switch f := v.(type) {
	case float64:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	case float32:
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return strconv.FormatFloat(float64(f), 'g', -1, 32)
		}
	}
	return v
}

func codeFor(kind Kind) string {
	switch kind {
	case KindResourceNotFound:
		return CodeResourceNotFound
	case KindValidation:
		return CodeValidation
	case KindGeospatial:
		return CodeGeospatial
	case KindDataAccess:
		return CodeDataAccess
	default:
		return CodeUnexpected
	}
}
