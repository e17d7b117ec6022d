package insight

import "time"

// CustomerInsightResponse is one customer's value profile on the wire
type CustomerInsightResponse struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	LifetimeValue     float64   `json:"lifetimeValue"`
	OrderCount        int       `json:"orderCount"`
	AverageOrderValue float64   `json:"averageOrderValue"`
	LastOrderDate     time.Time `json:"lastOrderDate"`
	Segment           string    `json:"segment"`
}

// SummaryResponse is the aggregate block next to the customer list
type SummaryResponse struct {
	TotalCustomers       int            `json:"totalCustomers"`
	TotalLifetimeValue   float64        `json:"totalLifetimeValue"`
	AverageLifetimeValue float64        `json:"averageLifetimeValue"`
	BySegment            map[string]int `json:"bySegment"`
}

// InsightsResponse is the body of GET /admin/customers/insights
type InsightsResponse struct {
	Customers []CustomerInsightResponse `json:"customers"`
	Summary   SummaryResponse           `json:"summary"`
}

// ToResponse converts a Result to its wire form. Customers is never nil so
// an empty result encodes as [].
func ToResponse(r *Result) InsightsResponse {
	customers := make([]CustomerInsightResponse, len(r.Customers))
	for i, ci := range r.Customers {
		customers[i] = CustomerInsightResponse{
			ID:                ci.ID,
			Email:             ci.Email,
			LifetimeValue:     ci.LifetimeValue.Round(2).InexactFloat64(),
			OrderCount:        ci.OrderCount,
			AverageOrderValue: ci.AverageOrderValue.Round(2).InexactFloat64(),
			LastOrderDate:     ci.LastOrderDate.UTC(),
			Segment:           ci.Segment.String(),
		}
	}

	bySegment := make(map[string]int, len(r.Summary.BySegment))
	for seg, n := range r.Summary.BySegment {
		bySegment[seg.String()] = n
	}

	return InsightsResponse{
		Customers: customers,
		Summary: SummaryResponse{
			TotalCustomers:       r.Summary.TotalCustomers,
			TotalLifetimeValue:   r.Summary.TotalLifetimeValue.Round(2).InexactFloat64(),
			AverageLifetimeValue: r.Summary.AverageLifetime.Round(2).InexactFloat64(),
			BySegment:            bySegment,
		},
	}
}
