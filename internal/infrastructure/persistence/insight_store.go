package persistence

import (
	"context"

	"github.com/commerce/backend/internal/domain/insight"
	"gorm.io/gorm"
)

// GormCustomerStore implements insight.CustomerStore using GORM
type GormCustomerStore struct {
	db *gorm.DB
}

// NewGormCustomerStore creates a new GormCustomerStore
func NewGormCustomerStore(db *gorm.DB) *GormCustomerStore {
	return &GormCustomerStore{db: db}
}

// ListCustomers returns customers oldest first, at most limit of them
func (s *GormCustomerStore) ListCustomers(ctx context.Context, limit int) ([]insight.Customer, error) {
	var models []CustomerModel
	query := s.db.WithContext(ctx).Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	customers := make([]insight.Customer, len(models))
	for i := range models {
		customers[i] = models[i].ToDomain()
	}
	return customers, nil
}

// Save inserts or updates customers
func (s *GormCustomerStore) Save(ctx context.Context, customers ...insight.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	models := make([]*CustomerModel, len(customers))
	for i, c := range customers {
		models[i] = CustomerModelFromDomain(c)
	}
	return s.db.WithContext(ctx).Save(models).Error
}

// GormOrderStore implements insight.OrderStore using GORM
type GormOrderStore struct {
	db *gorm.DB
}

// NewGormOrderStore creates a new GormOrderStore
func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

// ListOrders returns orders matching filter, oldest first
func (s *GormOrderStore) ListOrders(ctx context.Context, filter insight.OrderFilter) ([]insight.Order, error) {
	var models []OrderModel
	query := s.db.WithContext(ctx)
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if err := query.Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	orders := make([]insight.Order, len(models))
	for i := range models {
		orders[i] = models[i].ToDomain()
	}
	return orders, nil
}

// Save inserts or updates orders
func (s *GormOrderStore) Save(ctx context.Context, orders ...insight.Order) error {
	if len(orders) == 0 {
		return nil
	}
	models := make([]*OrderModel, len(orders))
	for i, o := range orders {
		models[i] = OrderModelFromDomain(o)
	}
	return s.db.WithContext(ctx).Save(models).Error
}
