package insight

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ComputeInsights derives a CustomerInsight for every customer, keeps the ones
// whose segment passes segmentFilter and sorts them by lifetime value descending.
// Customers with equal lifetime value keep their input order.
//
// ordersFor may return orders of any status; only completed orders contribute.
// The function is pure and never returns nil.
func ComputeInsights(customers []Customer, ordersFor func(customerID string) []Order, segmentFilter Segment) []CustomerInsight {
	result := make([]CustomerInsight, 0, len(customers))
	for _, c := range customers {
		var orders []Order
		if ordersFor != nil {
			orders = ordersFor(c.ID)
		}
		ci := ComputeInsight(c, orders)
		if !segmentFilter.Matches(ci.Segment) {
			continue
		}
		result = append(result, ci)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LifetimeValue.GreaterThan(result[j].LifetimeValue)
	})
	return result
}

// ComputeInsight derives the value profile of a single customer from its orders
func ComputeInsight(c Customer, orders []Order) CustomerInsight {
	ltv := decimal.Zero
	count := 0
	last := c.CreatedAt
	seenOrder := false

	for _, o := range orders {
		if !o.IsCompleted() {
			continue
		}
		ltv = ltv.Add(o.Amount())
		count++
		if !seenOrder || o.CreatedAt.After(last) {
			last = o.CreatedAt
			seenOrder = true
		}
	}

	// segment thresholds apply to the value as reported, in whole cents
	ltv = ltv.Round(2)

	aov := decimal.Zero
	if count > 0 {
		aov = ltv.Div(decimal.NewFromInt(int64(count)))
	}

	return CustomerInsight{
		ID:                c.ID,
		Email:             c.Email,
		LifetimeValue:     ltv,
		OrderCount:        count,
		AverageOrderValue: aov,
		LastOrderDate:     last,
		Segment:           SegmentFor(ltv),
	}
}
