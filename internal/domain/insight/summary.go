package insight

import "github.com/shopspring/decimal"

// Summary aggregates a set of insights for the admin dashboard header
type Summary struct {
	TotalCustomers     int
	TotalLifetimeValue decimal.Decimal
	AverageLifetime    decimal.Decimal
	BySegment          map[Segment]int
}

// Summarize counts insights per segment and totals their lifetime value.
// Every concrete segment is present in BySegment, even with a zero count.
func Summarize(insights []CustomerInsight) Summary {
	s := Summary{
		TotalLifetimeValue: decimal.Zero,
		AverageLifetime:    decimal.Zero,
		BySegment:          make(map[Segment]int, len(Segments)),
	}
	for _, seg := range Segments {
		s.BySegment[seg] = 0
	}
	for _, ci := range insights {
		s.TotalCustomers++
		s.TotalLifetimeValue = s.TotalLifetimeValue.Add(ci.LifetimeValue)
		s.BySegment[ci.Segment]++
	}
	if s.TotalCustomers > 0 {
		s.AverageLifetime = s.TotalLifetimeValue.Div(decimal.NewFromInt(int64(s.TotalCustomers)))
	}
	return s
}
