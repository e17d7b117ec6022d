package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/commerce/backend/internal/domain/insight"
	"github.com/commerce/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// negative or missing totals count as zero revenue, matching the insight aggregator
const revenueExpr = "COALESCE(SUM(CASE WHEN total > 0 THEN total ELSE 0 END), 0)"

// GormSalesReportRepository implements report.SalesReportRepository using GORM
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

func (r *GormSalesReportRepository) completedIn(ctx context.Context, w report.Window) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("status = ?", string(insight.OrderStatusCompleted)).
		Where("created_at >= ? AND created_at < ?", w.Start.UTC(), w.End.UTC())
}

// GetPeriodTotals returns revenue and order count of completed orders in the window
func (r *GormSalesReportRepository) GetPeriodTotals(ctx context.Context, w report.Window) (report.PeriodTotals, error) {
	var result struct {
		Revenue    decimal.Decimal
		OrderCount int64
	}

	err := r.completedIn(ctx, w).
		Select(revenueExpr + " AS revenue, COUNT(*) AS order_count").
		Scan(&result).Error
	if err != nil {
		return report.PeriodTotals{}, err
	}

	return report.PeriodTotals{
		Revenue:    result.Revenue,
		OrderCount: result.OrderCount,
	}, nil
}

// GetDailySales returns per-day totals of completed orders, oldest first
func (r *GormSalesReportRepository) GetDailySales(ctx context.Context, w report.Window) ([]report.DailySales, error) {
	var results []struct {
		Day        string
		Revenue    decimal.Decimal
		OrderCount int64
	}

	err := r.completedIn(ctx, w).
		Select("DATE(created_at) AS day, " + revenueExpr + " AS revenue, COUNT(*) AS order_count").
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	daily := make([]report.DailySales, 0, len(results))
	for _, row := range results {
		day, err := parseDay(row.Day)
		if err != nil {
			return nil, err
		}
		daily = append(daily, report.DailySales{
			Date:       day,
			Revenue:    row.Revenue,
			OrderCount: row.OrderCount,
		})
	}
	return daily, nil
}

// parseDay accepts the plain date sqlite returns and the timestamp form
// database/sql produces when postgres hands back a DATE
func parseDay(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("unexpected day value %q: %w", raw, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
