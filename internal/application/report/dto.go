package report

import (
	"time"

	"github.com/commerce/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// SalesReportResponse is the sales report as returned to admin clients
type SalesReportResponse struct {
	Period              string               `json:"period"`
	PeriodStart         time.Time            `json:"period_start"`
	PeriodEnd           time.Time            `json:"period_end"`
	PreviousPeriodStart time.Time            `json:"previous_period_start"`
	PreviousPeriodEnd   time.Time            `json:"previous_period_end"`
	TotalRevenue        float64              `json:"total_revenue"`
	TotalOrders         int64                `json:"total_orders"`
	AvgOrderValue       float64              `json:"avg_order_value"`
	PreviousRevenue     float64              `json:"previous_revenue"`
	PreviousOrders      int64                `json:"previous_orders"`
	RevenueGrowth       float64              `json:"revenue_growth"`
	OrderGrowth         float64              `json:"order_growth"`
	AvgOrderValueGrowth float64              `json:"avg_order_value_growth"`
	Daily               []DailySalesResponse `json:"daily"`
	GeneratedAt         time.Time            `json:"generated_at"`
}

// DailySalesResponse represents one day of the breakdown
type DailySalesResponse struct {
	Date       string  `json:"date"`
	Revenue    float64 `json:"revenue"`
	OrderCount int64   `json:"order_count"`
}

func toSalesReportResponse(r report.SalesReport, generatedAt time.Time) *SalesReportResponse {
	daily := make([]DailySalesResponse, len(r.Daily))
	for i, d := range r.Daily {
		daily[i] = DailySalesResponse{
			Date:       d.Date.UTC().Format(time.DateOnly),
			Revenue:    toFloat64(d.Revenue),
			OrderCount: d.OrderCount,
		}
	}
	return &SalesReportResponse{
		Period:              r.Period.String(),
		PeriodStart:         r.Current.Start,
		PeriodEnd:           r.Current.End,
		PreviousPeriodStart: r.Previous.Start,
		PreviousPeriodEnd:   r.Previous.End,
		TotalRevenue:        toFloat64(r.Revenue),
		TotalOrders:         r.OrderCount,
		AvgOrderValue:       toFloat64(r.AverageOrderValue),
		PreviousRevenue:     toFloat64(r.PreviousRevenue),
		PreviousOrders:      r.PreviousOrders,
		RevenueGrowth:       toFloat64(r.Growth.Revenue),
		OrderGrowth:         toFloat64(r.Growth.OrderCount),
		AvgOrderValueGrowth: toFloat64(r.Growth.AverageOrderValue),
		Daily:               daily,
		GeneratedAt:         generatedAt,
	}
}

func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
