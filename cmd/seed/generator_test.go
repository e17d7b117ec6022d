package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	cfg := GeneratorConfig{
		Customers:     20,
		MaxOrders:     5,
		MaxOrderTotal: 500,
		History:       90 * 24 * time.Hour,
	}

	ds := NewGenerator(42, cfg, now).Generate()
	require.Len(t, ds.Customers, 20)

	byID := make(map[string]time.Time, len(ds.Customers))
	for _, c := range ds.Customers {
		assert.NotEmpty(t, c.ID)
		assert.Contains(t, c.Email, "@")
		assert.False(t, c.CreatedAt.After(now))
		byID[c.ID] = c.CreatedAt
	}
	assert.LessOrEqual(t, len(ds.Orders), 20*5)

	for _, o := range ds.Orders {
		created, ok := byID[o.CustomerID]
		require.True(t, ok, "order %s references unknown customer", o.ID)
		assert.False(t, o.CreatedAt.Before(created))
		assert.False(t, o.CreatedAt.After(now))
		require.True(t, o.Total.Valid)
		assert.True(t, o.Total.Decimal.Equal(o.Total.Decimal.Round(2)))
		assert.False(t, o.Total.Decimal.IsNegative())
	}
}

func TestGenerator_SameSeedSameData(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	cfg := GeneratorConfig{Customers: 5, MaxOrders: 3, MaxOrderTotal: 100}

	a := NewGenerator(7, cfg, now).Generate()
	b := NewGenerator(7, cfg, now).Generate()
	assert.Equal(t, a, b)
}

func TestGenerator_MalformedTotals(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	cfg := GeneratorConfig{Customers: 10, MaxOrders: 4, MaxOrderTotal: 100, MalformedRatio: 1}

	ds := NewGenerator(3, cfg, now).Generate()
	for _, o := range ds.Orders {
		assert.False(t, o.Total.Valid)
	}
}

func TestGenerator_NoOrders(t *testing.T) {
	ds := NewGenerator(1, GeneratorConfig{Customers: 3}, time.Now()).Generate()
	assert.Len(t, ds.Customers, 3)
	assert.Empty(t, ds.Orders)
}
