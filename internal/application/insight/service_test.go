package insight

import (
	"context"
	"errors"
	"runtime/pprof"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/commerce/backend/internal/domain/insight"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock implementations

type mockCustomerStore struct {
	mock.Mock
}

func (m *mockCustomerStore) ListCustomers(ctx context.Context, limit int) ([]insight.Customer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]insight.Customer), args.Error(1)
}

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) ListOrders(ctx context.Context, filter insight.OrderFilter) ([]insight.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]insight.Order), args.Error(1)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordInsights(ctx context.Context, segment insight.Segment, customers int, duration time.Duration) {
	m.Called(ctx, segment, customers, duration)
}

func (m *mockMetrics) RecordRetrievalFailure(ctx context.Context, op string) {
	m.Called(ctx, op)
}

// mapOrderStore serves orders from memory and tracks peak concurrency
type mapOrderStore struct {
	orders   map[string][]insight.Order
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	mu       sync.Mutex
	seen     []string
}

func (s *mapOrderStore) ListOrders(ctx context.Context, filter insight.OrderFilter) ([]insight.Order, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	s.mu.Lock()
	s.seen = append(s.seen, filter.CustomerID)
	s.mu.Unlock()

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.orders[filter.CustomerID], nil
}

var created = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func customer(id string) insight.Customer {
	return insight.Customer{ID: id, Email: id + "@shop.test", CreatedAt: created}
}

func completed(id, customerID string, total float64) insight.Order {
	return insight.Order{
		ID:         id,
		CustomerID: customerID,
		Total:      insight.NewTotal(total),
		Status:     insight.OrderStatusCompleted,
		CreatedAt:  created.Add(24 * time.Hour),
	}
}

func filterFor(id string) insight.OrderFilter {
	return insight.OrderFilter{CustomerID: id, Status: insight.OrderStatusCompleted}
}

func TestService_GetCustomerInsights(t *testing.T) {
	customers := new(mockCustomerStore)
	orders := new(mockOrderStore)
	ctx := context.Background()

	customers.On("ListCustomers", mock.Anything, 100).Return([]insight.Customer{customer("c2"), customer("c1")}, nil)
	orders.On("ListOrders", mock.Anything, filterFor("c1")).Return([]insight.Order{completed("o1", "c1", 60000)}, nil)
	orders.On("ListOrders", mock.Anything, filterFor("c2")).Return([]insight.Order{completed("o2", "c2", 10000)}, nil)

	svc := NewService(customers, orders, zap.NewNop(), DefaultConfig())
	result, err := svc.GetCustomerInsights(ctx, Query{Segment: insight.SegmentAll})

	require.NoError(t, err)
	require.Len(t, result.Customers, 2)
	assert.Equal(t, "c1", result.Customers[0].ID)
	assert.Equal(t, insight.SegmentVIP, result.Customers[0].Segment)
	assert.Equal(t, "c2", result.Customers[1].ID)
	assert.Equal(t, insight.SegmentMedium, result.Customers[1].Segment)
	assert.Equal(t, 2, result.Summary.TotalCustomers)
	assert.True(t, result.Summary.TotalLifetimeValue.Equal(decimal.NewFromInt(70000)))
	customers.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestService_GetCustomerInsights_StoreReadsCarryOperationLabels(t *testing.T) {
	customers := new(mockCustomerStore)
	orders := new(mockOrderStore)
	labelled := func(op string) any {
		return mock.MatchedBy(func(ctx context.Context) bool {
			v, ok := pprof.Label(ctx, "operation")
			return ok && v == op
		})
	}

	customers.On("ListCustomers", labelled("list_customers"), 100).Return([]insight.Customer{customer("c1")}, nil)
	orders.On("ListOrders", labelled("list_orders"), filterFor("c1")).Return([]insight.Order{completed("o1", "c1", 100)}, nil)

	svc := NewService(customers, orders, zap.NewNop(), DefaultConfig())
	result, err := svc.GetCustomerInsights(context.Background(), Query{Segment: insight.SegmentAll})

	require.NoError(t, err)
	require.Len(t, result.Customers, 1)
	customers.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestService_GetCustomerInsights_SegmentFilterAndLimit(t *testing.T) {
	customers := new(mockCustomerStore)
	orders := new(mockOrderStore)

	customers.On("ListCustomers", mock.Anything, 2).Return([]insight.Customer{customer("c1"), customer("c2")}, nil)
	orders.On("ListOrders", mock.Anything, filterFor("c1")).Return([]insight.Order{completed("o1", "c1", 60000)}, nil)
	orders.On("ListOrders", mock.Anything, filterFor("c2")).Return([]insight.Order{}, nil)

	svc := NewService(customers, orders, nil, Config{})
	result, err := svc.GetCustomerInsights(context.Background(), Query{Segment: insight.SegmentVIP, Limit: 2})

	require.NoError(t, err)
	require.Len(t, result.Customers, 1)
	assert.Equal(t, "c1", result.Customers[0].ID)
	assert.Equal(t, 1, result.Summary.BySegment[insight.SegmentVIP])
}

func TestService_GetCustomerInsights_NoCustomers(t *testing.T) {
	customers := new(mockCustomerStore)
	orders := new(mockOrderStore)
	customers.On("ListCustomers", mock.Anything, 100).Return([]insight.Customer{}, nil)

	svc := NewService(customers, orders, zap.NewNop(), DefaultConfig())
	result, err := svc.GetCustomerInsights(context.Background(), Query{})

	require.NoError(t, err)
	assert.NotNil(t, result.Customers)
	assert.Empty(t, result.Customers)
	orders.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
}

func TestService_GetCustomerInsights_CustomerStoreFailure(t *testing.T) {
	customers := new(mockCustomerStore)
	orders := new(mockOrderStore)
	metrics := new(mockMetrics)
	dbErr := errors.New("connection refused")

	customers.On("ListCustomers", mock.Anything, 100).Return(nil, dbErr)
	metrics.On("RecordRetrievalFailure", mock.Anything, OpListCustomers).Return()

	svc := NewService(customers, orders, zap.NewNop(), DefaultConfig(), WithMetrics(metrics))
	result, err := svc.GetCustomerInsights(context.Background(), Query{})

	require.Error(t, err)
	assert.Nil(t, result)
	var re *insight.RetrievalError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, OpListCustomers, re.Op)
	assert.Equal(t, "connection refused", re.Cause())
	assert.ErrorIs(t, err, dbErr)
	metrics.AssertExpectations(t)
}

func TestService_GetCustomerInsights_OrderStoreFailure(t *testing.T) {
	customers := new(mockCustomerStore)
	orders := new(mockOrderStore)
	dbErr := errors.New("relation \"orders\" does not exist")

	customers.On("ListCustomers", mock.Anything, 100).Return([]insight.Customer{customer("c1")}, nil)
	orders.On("ListOrders", mock.Anything, filterFor("c1")).Return(nil, dbErr)

	svc := NewService(customers, orders, zap.NewNop(), DefaultConfig())
	_, err := svc.GetCustomerInsights(context.Background(), Query{})

	var re *insight.RetrievalError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, OpListOrders, re.Op)
	assert.ErrorIs(t, err, dbErr)
}

func TestService_GetCustomerInsights_RecordsMetrics(t *testing.T) {
	customers := new(mockCustomerStore)
	orders := new(mockOrderStore)
	metrics := new(mockMetrics)

	customers.On("ListCustomers", mock.Anything, 100).Return([]insight.Customer{customer("c1")}, nil)
	orders.On("ListOrders", mock.Anything, filterFor("c1")).Return([]insight.Order{}, nil)
	metrics.On("RecordInsights", mock.Anything, insight.SegmentLow, 1, mock.AnythingOfType("time.Duration")).Return()

	svc := NewService(customers, orders, zap.NewNop(), DefaultConfig(), WithMetrics(metrics))
	_, err := svc.GetCustomerInsights(context.Background(), Query{Segment: insight.SegmentLow})

	require.NoError(t, err)
	metrics.AssertExpectations(t)
}

func TestService_GetCustomerInsights_BoundedConcurrency(t *testing.T) {
	var list []insight.Customer
	byID := map[string][]insight.Order{}
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		list = append(list, customer(id))
		byID[id] = []insight.Order{completed("o-"+id, id, 100)}
	}
	customers := new(mockCustomerStore)
	customers.On("ListCustomers", mock.Anything, 100).Return(list, nil)
	store := &mapOrderStore{orders: byID, delay: 10 * time.Millisecond}

	svc := NewService(customers, store, zap.NewNop(), Config{MaxConcurrency: 3})
	result, err := svc.GetCustomerInsights(context.Background(), Query{})

	require.NoError(t, err)
	require.Len(t, result.Customers, len(list))
	assert.LessOrEqual(t, store.peak.Load(), int32(3))
	assert.Len(t, store.seen, len(list))
	for _, ci := range result.Customers {
		assert.Equal(t, 1, ci.OrderCount, ci.ID)
	}
}

func TestService_GetCustomerInsights_DeadlineExceeded(t *testing.T) {
	customers := new(mockCustomerStore)
	customers.On("ListCustomers", mock.Anything, 100).Return([]insight.Customer{customer("c1"), customer("c2")}, nil)
	store := &mapOrderStore{orders: map[string][]insight.Order{}, delay: time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	svc := NewService(customers, store, zap.NewNop(), DefaultConfig())
	result, err := svc.GetCustomerInsights(ctx, Query{})

	assert.Nil(t, result)
	var re *insight.RetrievalError
	require.ErrorAs(t, err, &re)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(nil, nil, nil, Config{CustomerLimit: -1})
	assert.Equal(t, DefaultConfig(), svc.config)
	assert.NotNil(t, svc.logger)
	assert.IsType(t, noopMetrics{}, svc.metrics)
}
