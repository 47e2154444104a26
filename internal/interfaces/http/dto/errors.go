package dto

import (
	"net/http"
	"strings"
)

// Codes produced by the HTTP layer itself. Domain errors keep the code
// they were created with (INVALID_SKU, SHIPMENT_NOT_IN_TRANSIT, ...).
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeAlreadyExists   = "ALREADY_EXISTS"
	ErrCodeInvalidState    = "INVALID_STATE"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
)

// invalidPrefix marks input errors raised by domain constructors
const invalidPrefix = "INVALID_"

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeNotFound:  http.StatusNotFound,
	"ITEM_NOT_FOUND": http.StatusNotFound,

	ErrCodeAlreadyExists: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	"NO_ACTIVE_WAREHOUSE":     http.StatusUnprocessableEntity,
	"SHIPMENT_NOT_IN_TRANSIT": http.StatusUnprocessableEntity,
	"SHIPMENT_REQUIRES_ITEM":  http.StatusUnprocessableEntity,
	"EXPORT_UNAVAILABLE":      http.StatusUnprocessableEntity,

	ErrCodeUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code. Codes not in
// ErrorCodeHTTPStatus starting with INVALID_ are 400, anything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, invalidPrefix) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
