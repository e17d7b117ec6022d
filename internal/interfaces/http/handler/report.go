package handler

import (
	"context"
	"net/http"

	reportapp "github.com/commerce/backend/internal/application/report"
	"github.com/commerce/backend/internal/domain/report"
	"github.com/gin-gonic/gin"
)

// ReportFailureMessage is the message of every 500 from the sales report endpoint
const ReportFailureMessage = "Failed to fetch sales report"

// SalesReportService builds the period-over-period sales report
type SalesReportService interface {
	GetSalesReport(ctx context.Context, period report.Period) (*reportapp.SalesReportResponse, error)
}

// ReportHandler serves the admin sales report
type ReportHandler struct {
	BaseHandler
	service SalesReportService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(service SalesReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetSalesReport handles GET /admin/reports/sales?period=
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	period, err := report.ParsePeriod(c.Query("period"))
	if err != nil {
		h.HandleError(c, "Invalid period", err)
		return
	}

	resp, err := h.service.GetSalesReport(c.Request.Context(), period)
	if err != nil {
		h.HandleError(c, ReportFailureMessage, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": resp})
}
