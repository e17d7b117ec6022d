// Package handler contains the HTTP handlers of the admin API.
package handler

import (
	"errors"
	"net/http"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/infrastructure/logger"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/commerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common response helpers
type BaseHandler struct{}

// Error sends a {message, error} body with the given status
func (h *BaseHandler) Error(c *gin.Context, status int, code, message, cause string) {
	c.JSON(status, dto.NewErrorResponse(code, message, cause).WithRequestID(middleware.GetRequestID(c)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message, cause string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message, cause)
}

// ValidationError sends a 400 response describing a binding failure
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(err, middleware.GetRequestID(c)))
}

// HandleError maps err onto a {message, error} response. Domain errors use
// the status of their code; anything else is a 500 whose error field carries
// the underlying cause.
func (h *BaseHandler) HandleError(c *gin.Context, message string, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, message, domainErr.Message)
		return
	}

	cause := err.Error()
	code := dto.ErrCodeInternal
	var retrievalErr *shared.RetrievalError
	if errors.As(err, &retrievalErr) {
		cause = retrievalErr.Cause()
		code = dto.ErrCodeRetrieval
	}

	logger.GetGinLogger(c).Error(message, zap.Error(err))
	h.Error(c, http.StatusInternalServerError, code, message, cause)
}
