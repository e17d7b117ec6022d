package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeRetrieval, http.StatusInternalServerError},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"ERR_SOMETHING_NEW", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_SEGMENT"))
	assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_PERIOD"))
	assert.Equal(t, "NOT_FOUND", NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeInternal, NormalizeErrorCode(ErrCodeInternal))
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "limit", Message: "Must be at most 1000"},
		{Field: "segment", Message: "Must be one of: all vip high medium low"},
	})

	assert.Equal(t, "Request validation failed", resp.Message)
	assert.Equal(t, "limit: Must be at most 1000", resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Code)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Len(t, resp.Details, 2)

	empty := NewValidationErrorResponse("Request validation failed", "", nil)
	assert.Equal(t, "Request validation failed", empty.Error)
}

func TestErrorResponse_WithRequestID(t *testing.T) {
	base := NewErrorResponse(ErrCodeRetrieval, "Failed to fetch customer insights", "connection refused")
	withID := base.WithRequestID("abc")

	assert.Empty(t, base.RequestID)
	assert.Equal(t, "abc", withID.RequestID)
	assert.Equal(t, "connection refused", withID.Error)
}
