package insight

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order as recorded by the storefront
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
	OrderStatusArchived  OrderStatus = "archived"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// Customer is the snapshot of a storefront customer used for aggregation
type Customer struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Order is the snapshot of a storefront order used for aggregation.
// Total is nullable because upstream records are not guaranteed to carry one.
type Order struct {
	ID         string
	CustomerID string
	Total      decimal.NullDecimal
	Status     OrderStatus
	CreatedAt  time.Time
}

// IsCompleted reports whether the order counts toward lifetime value
func (o Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// Amount returns the order total. Missing or negative totals count as zero.
func (o Order) Amount() decimal.Decimal {
	if !o.Total.Valid || o.Total.Decimal.IsNegative() {
		return decimal.Zero
	}
	return o.Total.Decimal
}

// NewTotal builds a valid nullable total from a float amount
func NewTotal(amount float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(amount))
}

// ParseTotal parses a raw total. Unparsable input yields an invalid (missing) total.
func ParseTotal(raw string) decimal.NullDecimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// CustomerInsight is the derived value profile of one customer.
// It is computed per request and never persisted.
type CustomerInsight struct {
	ID                string
	Email             string
	LifetimeValue     decimal.Decimal
	OrderCount        int
	AverageOrderValue decimal.Decimal
	LastOrderDate     time.Time
	Segment           Segment
}
