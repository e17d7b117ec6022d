package insight

import (
	"context"
	"errors"
	"time"

	"github.com/commerce/backend/internal/domain/insight"
	"github.com/commerce/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Operation names reported in retrieval errors
const (
	OpListCustomers = "list customers"
	OpListOrders    = "list orders"
)

// Config contains configuration for Service
type Config struct {
	// CustomerLimit is the number of customers read when a query does not set one
	CustomerLimit int
	// MaxConcurrency bounds the in-flight per-customer order reads
	MaxConcurrency int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		CustomerLimit:  100,
		MaxConcurrency: 8,
	}
}

// MetricsRecorder receives business metrics for insight computations
type MetricsRecorder interface {
	RecordInsights(ctx context.Context, segment insight.Segment, customers int, duration time.Duration)
	RecordRetrievalFailure(ctx context.Context, op string)
}

type noopMetrics struct{}

func (noopMetrics) RecordInsights(context.Context, insight.Segment, int, time.Duration) {}
func (noopMetrics) RecordRetrievalFailure(context.Context, string) {}

// Query selects the customers to profile
type Query struct {
	Segment insight.Segment
	Limit   int
}

// Result is the computed insight list plus its summary
type Result struct {
	Customers []insight.CustomerInsight
	Summary   insight.Summary
}

// Service computes customer insights from the customer and order stores
type Service struct {
	customers insight.CustomerStore
	orders    insight.OrderStore
	metrics   MetricsRecorder
	logger    *zap.Logger
	config    Config
}

// Option configures a Service
type Option func(*Service)

// WithMetrics sets the metrics recorder
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewService creates a new insight Service
func NewService(
	customers insight.CustomerStore,
	orders insight.OrderStore,
	logger *zap.Logger,
	config Config,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultConfig()
	if config.CustomerLimit <= 0 {
		config.CustomerLimit = defaults.CustomerLimit
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = defaults.MaxConcurrency
	}
	s := &Service{
		customers: customers,
		orders:    orders,
		metrics:   noopMetrics{},
		logger:    logger,
		config:    config,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCustomerInsights reads customers and their completed orders and
// returns their value profiles sorted by lifetime value.
// Any store failure or context cancellation yields a *insight.RetrievalError.
func (s *Service) GetCustomerInsights(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()
	limit := q.Limit
	if limit <= 0 {
		limit = s.config.CustomerLimit
	}

	var customers []insight.Customer
	var err error
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationListCustomers), func(ctx context.Context) {
		customers, err = s.customers.ListCustomers(ctx, limit)
	})
	if err != nil {
		return nil, s.retrievalFailed(ctx, OpListCustomers, err)
	}

	orders, err := s.fetchOrders(ctx, customers)
	if err != nil {
		return nil, s.retrievalFailed(ctx, OpListOrders, err)
	}

	var insights []insight.CustomerInsight
	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelOperation: telemetry.OperationComputeInsights,
		telemetry.ProfilingLabelSegment:   q.Segment.String(),
	}, func(context.Context) {
		insights = insight.ComputeInsights(customers, func(id string) []insight.Order {
			return orders[id]
		}, q.Segment)
	})

	s.metrics.RecordInsights(ctx, q.Segment, len(insights), time.Since(start))
	s.logger.Debug("Computed customer insights",
		zap.String("segment", q.Segment.String()),
		zap.Int("customers", len(customers)),
		zap.Int("matched", len(insights)),
		zap.Duration("duration", time.Since(start)),
	)

	return &Result{
		Customers: insights,
		Summary:   insight.Summarize(insights),
	}, nil
}

// fetchOrders reads the completed orders of every customer with bounded
// concurrency. The first failure cancels the remaining reads.
func (s *Service) fetchOrders(ctx context.Context, customers []insight.Customer) (map[string][]insight.Order, error) {
	results := make([][]insight.Order, len(customers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.MaxConcurrency)
	for i, c := range customers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var err error
			telemetry.WithProfilingLabels(gctx, telemetry.OperationLabels(telemetry.OperationListOrders), func(ctx context.Context) {
				results[i], err = s.orders.ListOrders(ctx, insight.OrderFilter{
					CustomerID: c.ID,
					Status:     insight.OrderStatusCompleted,
				})
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// a store may ignore cancellation and still return data
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byCustomer := make(map[string][]insight.Order, len(customers))
	for i, c := range customers {
		byCustomer[c.ID] = results[i]
	}
	return byCustomer, nil
}

func (s *Service) retrievalFailed(ctx context.Context, op string, err error) error {
	s.metrics.RecordRetrievalFailure(ctx, op)
	level := s.logger.Error
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		level = s.logger.Warn
	}
	level("Customer insight retrieval failed", zap.String("op", op), zap.Error(err))
	return insight.NewRetrievalError(op, err)
}
