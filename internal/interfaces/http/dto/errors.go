package dto

import (
	"net/http"
	"strings"
)

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	ErrCodeInternal   = "ERR_INTERNAL"
	ErrCodeValidation = "ERR_VALIDATION"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"

	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
	ErrCodeInvalidState = "ERR_INVALID_STATE"

	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	ErrCodeUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// statusByCode maps error codes to HTTP status codes
var statusByCode = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeUnavailable:  http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	// Domain codes like PRODUCT_NOT_FOUND carry their category as suffix
	switch {
	case code == "INVALID_CREDENTIALS", code == "UNAUTHORIZED":
		return http.StatusUnauthorized
	case code == "EMPTY_CART", code == "INVALID_STATE":
		return http.StatusUnprocessableEntity
	case code == "NOT_FOUND", strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_REQUIRED"), strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "_UNAVAILABLE"):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
