package report

import (
	"context"
	"time"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PeriodTotals is the completed-order revenue and count inside one window
type PeriodTotals struct {
	Revenue    decimal.Decimal
	OrderCount int64
}

// AverageOrderValue returns Revenue / OrderCount, or zero without orders
func (t PeriodTotals) AverageOrderValue() decimal.Decimal {
	if t.OrderCount <= 0 {
		return decimal.Zero
	}
	return t.Revenue.Div(decimal.NewFromInt(t.OrderCount))
}

// DailySales is the completed-order revenue of a single calendar day (UTC)
type DailySales struct {
	Date       time.Time
	Revenue    decimal.Decimal
	OrderCount int64
}

// Growth holds period-over-period change in percent
type Growth struct {
	Revenue           decimal.Decimal
	OrderCount        decimal.Decimal
	AverageOrderValue decimal.Decimal
}

// SalesReport compares the current window with the previous one
type SalesReport struct {
	Period            Period
	Current           Window
	Previous          Window
	Revenue           decimal.Decimal
	OrderCount        int64
	AverageOrderValue decimal.Decimal
	PreviousRevenue   decimal.Decimal
	PreviousOrders    int64
	Growth            Growth
	Daily             []DailySales
}

// GrowthPercent returns the change from previous to current in percent,
// rounded to two decimals. A zero baseline yields 0 when current is also
// zero and 100 otherwise.
func GrowthPercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// BuildSalesReport assembles the report for a period from the totals of both windows
func BuildSalesReport(period Period, current, previous Window, cur, prev PeriodTotals, daily []DailySales) SalesReport {
	if daily == nil {
		daily = []DailySales{}
	}
	curAOV := cur.AverageOrderValue()
	prevAOV := prev.AverageOrderValue()
	return SalesReport{
		Period:            period,
		Current:           current,
		Previous:          previous,
		Revenue:           cur.Revenue,
		OrderCount:        cur.OrderCount,
		AverageOrderValue: curAOV.Round(2),
		PreviousRevenue:   prev.Revenue,
		PreviousOrders:    prev.OrderCount,
		Growth: Growth{
			Revenue:           GrowthPercent(cur.Revenue, prev.Revenue),
			OrderCount:        GrowthPercent(decimal.NewFromInt(cur.OrderCount), decimal.NewFromInt(prev.OrderCount)),
			AverageOrderValue: GrowthPercent(curAOV, prevAOV),
		},
		Daily: daily,
	}
}

// RetrievalError reports a sales read that could not complete
type RetrievalError = shared.RetrievalError

// SalesReportRepository reads completed-order aggregates for a window
type SalesReportRepository interface {
	// GetPeriodTotals returns revenue and order count of completed orders in the window
	GetPeriodTotals(ctx context.Context, w Window) (PeriodTotals, error)

	// GetDailySales returns per-day totals of completed orders, oldest first
	GetDailySales(ctx context.Context, w Window) ([]DailySales, error)
}

// NewRetrievalError wraps a store error for the named read
func NewRetrievalError(op string, err error) *RetrievalError {
	return shared.NewRetrievalError(op, err)
}
