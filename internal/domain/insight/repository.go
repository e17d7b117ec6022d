package insight

import "context"

// OrderFilter narrows an order listing. Zero values mean no restriction.
type OrderFilter struct {
	CustomerID string
	Status     OrderStatus
}

// CustomerStore lists customers for aggregation
type CustomerStore interface {
	// ListCustomers returns at most limit customers; limit <= 0 means no limit
	ListCustomers(ctx context.Context, limit int) ([]Customer, error)
}

// OrderStore lists orders for aggregation
type OrderStore interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error)
}
