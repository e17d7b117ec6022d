package telemetry

import (
	"context"
	"sort"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelOperation = "operation"
	ProfilingLabelSegment   = "segment"
)

// Operation label values
const (
	OperationListCustomers   = "list_customers"
	OperationListOrders      = "list_orders"
	OperationComputeInsights = "compute_insights"
)

// MaxLabelValueLength bounds label values to keep profile cardinality low.
const MaxLabelValueLength = 128

// HighCardinalityLabels are dropped from profiling labels.
var HighCardinalityLabels = map[string]bool{
	"customer_id": true,
	"order_id":    true,
	"request_id":  true,
	"trace_id":    true,
	"span_id":     true,
}

// WithProfilingLabels runs fn with pprof labels attached to its goroutine so
// profiles can be sliced by operation in Pyroscope. The labels are also
// readable from the context passed to fn. Labels work whether or not the
// profiler is running.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// OperationLabels returns labels naming a single operation.
func OperationLabels(operation string) map[string]string {
	return map[string]string{ProfilingLabelOperation: operation}
}

// sanitizeLabels returns key/value pairs sorted by key, skipping empty and
// high-cardinality entries and truncating long values.
func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, k := range keys {
		v := labels[k]
		if k == "" || v == "" || HighCardinalityLabels[k] {
			continue
		}
		if len(v) > MaxLabelValueLength {
			v = v[:MaxLabelValueLength]
		}
		pairs = append(pairs, k, v)
	}
	return pairs
}
