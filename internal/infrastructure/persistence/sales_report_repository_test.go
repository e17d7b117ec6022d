package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/commerce/backend/internal/domain/insight"
	"github.com/commerce/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSalesOrders(t *testing.T, store *GormOrderStore) {
	t.Helper()
	day1 := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 11, 20, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(context.Background(),
		insight.Order{ID: "o1", CustomerID: "c1", Total: insight.NewTotal(100), Status: insight.OrderStatusCompleted, CreatedAt: day1},
		insight.Order{ID: "o2", CustomerID: "c2", Total: insight.NewTotal(250.5), Status: insight.OrderStatusCompleted, CreatedAt: day1.Add(time.Hour)},
		insight.Order{ID: "o3", CustomerID: "c1", Total: insight.NewTotal(400), Status: insight.OrderStatusCompleted, CreatedAt: day2},
		insight.Order{ID: "o4", CustomerID: "c1", Total: insight.NewTotal(-50), Status: insight.OrderStatusCompleted, CreatedAt: day2},
		insight.Order{ID: "o5", CustomerID: "c3", Total: insight.NewTotal(9999), Status: insight.OrderStatusPending, CreatedAt: day2},
		insight.Order{ID: "o6", CustomerID: "c3", Total: insight.NewTotal(777), Status: insight.OrderStatusCompleted, CreatedAt: day1.Add(-30 * 24 * time.Hour)},
	))
}

func TestGormSalesReportRepository_GetPeriodTotals(t *testing.T) {
	db := setupTestDB(t)
	seedSalesOrders(t, NewGormOrderStore(db))
	repo := NewGormSalesReportRepository(db)

	w := report.Window{
		Start: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
	}

	totals, err := repo.GetPeriodTotals(context.Background(), w)

	require.NoError(t, err)
	assert.Equal(t, int64(4), totals.OrderCount)
	assert.True(t, totals.Revenue.Equal(decimal.RequireFromString("750.5")), "revenue %s", totals.Revenue)
}

func TestGormSalesReportRepository_GetPeriodTotals_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesReportRepository(db)

	totals, err := repo.GetPeriodTotals(context.Background(), report.Window{Start: t0, End: t0.Add(time.Hour)})

	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.OrderCount)
	assert.True(t, totals.Revenue.IsZero())
}

func TestGormSalesReportRepository_GetDailySales(t *testing.T) {
	db := setupTestDB(t)
	seedSalesOrders(t, NewGormOrderStore(db))
	repo := NewGormSalesReportRepository(db)

	w := report.Window{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	daily, err := repo.GetDailySales(context.Background(), w)

	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), daily[0].Date)
	assert.Equal(t, int64(2), daily[0].OrderCount)
	assert.True(t, daily[0].Revenue.Equal(decimal.RequireFromString("350.5")))
	assert.Equal(t, time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), daily[1].Date)
	assert.Equal(t, int64(2), daily[1].OrderCount)
	assert.True(t, daily[1].Revenue.Equal(decimal.NewFromInt(400)))
}

func TestGormSalesReportRepository_DatabaseError(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT .* FROM "orders" WHERE status = \$1`).
		WillReturnError(errors.New("canceling statement due to statement timeout"))

	repo := NewGormSalesReportRepository(gormDB)
	_, err := repo.GetPeriodTotals(context.Background(), report.Window{Start: t0, End: t0.Add(time.Hour)})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDay("2024-05-11T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), d)

	_, err = parseDay("yesterday")
	assert.Error(t, err)
}
