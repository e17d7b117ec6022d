package main

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/commerce/backend/internal/domain/insight"
	"github.com/shopspring/decimal"
)

// Dataset is one batch of generated customers and their orders
type Dataset struct {
	Customers []insight.Customer
	Orders    []insight.Order
}

// GeneratorConfig controls the shape of generated data
type GeneratorConfig struct {
	Customers      int
	MaxOrders      int     // orders per customer are drawn from [0, MaxOrders]
	MaxOrderTotal  float64 // order totals are drawn from [1, MaxOrderTotal]
	MalformedRatio float64 // share of orders stored without a total
	History        time.Duration
}

var orderStatuses = []string{
	string(insight.OrderStatusCompleted),
	string(insight.OrderStatusCompleted),
	string(insight.OrderStatusCompleted),
	string(insight.OrderStatusPending),
	string(insight.OrderStatusCanceled),
	string(insight.OrderStatusRefunded),
}

// Generator produces fake storefront data
type Generator struct {
	faker *gofakeit.Faker
	cfg   GeneratorConfig
	now   time.Time
}

// NewGenerator creates a Generator; seed 0 picks a random seed
func NewGenerator(seed uint64, cfg GeneratorConfig, now time.Time) *Generator {
	if cfg.MaxOrderTotal < 1 {
		cfg.MaxOrderTotal = 1
	}
	if cfg.History <= 0 {
		cfg.History = 365 * 24 * time.Hour
	}
	return &Generator{faker: gofakeit.New(seed), cfg: cfg, now: now}
}

// Generate builds the dataset. Orders never predate their customer.
func (g *Generator) Generate() Dataset {
	ds := Dataset{Customers: make([]insight.Customer, 0, g.cfg.Customers)}
	start := g.now.Add(-g.cfg.History)

	for i := 0; i < g.cfg.Customers; i++ {
		customer := insight.Customer{
			ID:        g.faker.UUID(),
			Email:     g.faker.Email(),
			CreatedAt: g.faker.DateRange(start, g.now).UTC(),
		}
		ds.Customers = append(ds.Customers, customer)

		n := 0
		if g.cfg.MaxOrders > 0 {
			n = g.faker.IntRange(0, g.cfg.MaxOrders)
		}
		for j := 0; j < n; j++ {
			ds.Orders = append(ds.Orders, g.order(customer))
		}
	}
	return ds
}

func (g *Generator) order(c insight.Customer) insight.Order {
	o := insight.Order{
		ID:         g.faker.UUID(),
		CustomerID: c.ID,
		Status:     insight.OrderStatus(g.faker.RandomString(orderStatuses)),
		CreatedAt:  g.faker.DateRange(c.CreatedAt, g.now).UTC(),
	}
	if g.faker.Float64() >= g.cfg.MalformedRatio {
		amount := g.faker.Float64Range(1, g.cfg.MaxOrderTotal)
		o.Total = decimal.NewNullDecimal(decimal.NewFromFloat(amount).Round(2))
	}
	return o
}
