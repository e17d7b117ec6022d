package persistence

import (
	"time"

	"github.com/commerce/backend/internal/domain/insight"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerModel is the persistence model for storefront customers
type CustomerModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;index"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// BeforeCreate assigns an id and normalizes timestamps to UTC
func (m *CustomerModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return nil
}

// ToDomain converts the model to a domain customer
func (m *CustomerModel) ToDomain() insight.Customer {
	return insight.Customer{
		ID:        m.ID,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

// CustomerModelFromDomain converts a domain customer to its model
func CustomerModelFromDomain(c insight.Customer) *CustomerModel {
	return &CustomerModel{ID: c.ID, Email: c.Email, CreatedAt: c.CreatedAt}
}

// OrderModel is the persistence model for storefront orders.
// Total is nullable; imported orders may lack one.
type OrderModel struct {
	ID         string              `gorm:"type:varchar(64);primaryKey"`
	CustomerID string              `gorm:"type:varchar(64);not null;index:idx_orders_customer_status,priority:1"`
	Total      decimal.NullDecimal `gorm:"type:decimal(14,2)"`
	Status     string              `gorm:"type:varchar(32);not null;index:idx_orders_customer_status,priority:2"`
	CreatedAt  time.Time           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// BeforeCreate assigns an id and normalizes timestamps to UTC
func (m *OrderModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return nil
}

// ToDomain converts the model to a domain order
func (m *OrderModel) ToDomain() insight.Order {
	return insight.Order{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Total:      m.Total,
		Status:     insight.OrderStatus(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}

// OrderModelFromDomain converts a domain order to its model
func OrderModelFromDomain(o insight.Order) *OrderModel {
	return &OrderModel{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Total:      o.Total,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
	}
}
