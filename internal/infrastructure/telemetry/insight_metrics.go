package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/commerce/backend/internal/domain/insight"
	"go.opentelemetry.io/otel/metric"
)

// InsightMetrics records customer insight computations.
type InsightMetrics struct {
	computations metric.Int64Counter
	customers    metric.Int64Histogram
	duration     metric.Float64Histogram
	failures     metric.Int64Counter
}

// NewInsightMetrics registers the insight instruments on meter.
func NewInsightMetrics(meter metric.Meter) (*InsightMetrics, error) {
	if meter == nil {
		return nil, fmt.Errorf("NewInsightMetrics: meter cannot be nil")
	}

	var (
		m   InsightMetrics
		err error
	)
	if m.computations, err = meter.Int64Counter("customer_insights_computed_total",
		metric.WithDescription("Number of customer insight computations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter customer_insights_computed_total: %w", err)
	}
	if m.customers, err = meter.Int64Histogram("customer_insights_result_size",
		metric.WithDescription("Customers returned per insight computation"),
		metric.WithUnit("{customer}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create histogram customer_insights_result_size: %w", err)
	}
	if m.duration, err = meter.Float64Histogram("customer_insights_duration_seconds",
		metric.WithDescription("Time spent retrieving and aggregating customer insights"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(HTTPDurationBuckets...),
	); err != nil {
		return nil, fmt.Errorf("failed to create histogram customer_insights_duration_seconds: %w", err)
	}
	if m.failures, err = meter.Int64Counter("customer_insights_retrieval_failures_total",
		metric.WithDescription("Store retrieval failures while computing insights"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter customer_insights_retrieval_failures_total: %w", err)
	}
	return &m, nil
}

// RecordInsights records one successful computation.
func (m *InsightMetrics) RecordInsights(ctx context.Context, segment insight.Segment, customers int, d time.Duration) {
	attrs := metric.WithAttributes(AttrSegment.String(segment.String()))
	m.computations.Add(ctx, 1, attrs)
	m.customers.Record(ctx, int64(customers), attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}

// RecordRetrievalFailure records a failed store call.
func (m *InsightMetrics) RecordRetrievalFailure(ctx context.Context, op string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(AttrOperation.String(op)))
}
