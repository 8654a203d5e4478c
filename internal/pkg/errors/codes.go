package errors

import "net/http"

const (
	CodeResourceNotFound = "RESOURCE_NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeGeospatial       = "GEOSPATIAL_ERROR"
	CodeDataAccess       = "DATA_ACCESS_ERROR"
	CodeUnexpected       = "INTERNAL_SERVER_ERROR"
	CodeInvalidRequest   = "INVALID_REQUEST"
)

const (
	msgDataAccess = "A database error occurred while processing your request"
	msgUnexpected = "An unexpected error occurred while processing your request"
)

var (
	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		CodeUnexpected,
		msgUnexpected,
		http.StatusInternalServerError,
	)
)
