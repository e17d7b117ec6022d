package dto

import "net/http"

// Error code constants. Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	ErrCodeInternal  = "ERR_INTERNAL"
	ErrCodeRetrieval = "ERR_RETRIEVAL"

	ErrCodeValidation = "ERR_VALIDATION"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	ErrCodeNotFound    = "ERR_NOT_FOUND"
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	ErrCodeUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeRetrieval:    http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeUnavailable:  http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes onto API error codes
var DomainErrorCodeMapping = map[string]string{
	"INVALID_SEGMENT": ErrCodeValidation,
	"INVALID_PERIOD":  ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code to its API code.
// Unknown codes are returned unchanged.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
