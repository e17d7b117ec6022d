package handler

import (
	"context"
	"fmt"
	"net/http"

	insightapp "github.com/commerce/backend/internal/application/insight"
	"github.com/commerce/backend/internal/domain/insight"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InsightFailureMessage is the message of every 500 from the insights endpoint
const InsightFailureMessage = "Failed to fetch customer insights"

// InsightService computes customer insights
type InsightService interface {
	GetCustomerInsights(ctx context.Context, q insightapp.Query) (*insightapp.Result, error)
}

// InsightHandler serves customer lifetime-value insights
type InsightHandler struct {
	BaseHandler
	service  InsightService
	maxLimit int
}

// NewInsightHandler creates an InsightHandler. Limits above maxLimit are rejected.
func NewInsightHandler(service InsightService, maxLimit int) *InsightHandler {
	return &InsightHandler{service: service, maxLimit: maxLimit}
}

// InsightsQuery are the query parameters of GetCustomerInsights
type InsightsQuery struct {
	Segment string `form:"segment"`
	Limit   *int   `form:"limit" binding:"omitempty,min=1"`
}

// GetCustomerInsights handles GET /admin/customers/insights
func (h *InsightHandler) GetCustomerInsights(c *gin.Context) {
	var q InsightsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}
	limit := 0
	if q.Limit != nil {
		limit = *q.Limit
	}
	if h.maxLimit > 0 && limit > h.maxLimit {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "Request validation failed",
			fmt.Sprintf("limit: Must be at most %d", h.maxLimit))
		return
	}

	segment, err := insight.ParseSegmentFilter(q.Segment)
	if err != nil {
		h.HandleError(c, "Invalid segment", err)
		return
	}

	result, err := h.service.GetCustomerInsights(c.Request.Context(), insightapp.Query{
		Segment: segment,
		Limit:   limit,
	})
	if err != nil {
		h.HandleError(c, InsightFailureMessage, err)
		return
	}

	c.JSON(http.StatusOK, insightapp.ToResponse(result))
}
