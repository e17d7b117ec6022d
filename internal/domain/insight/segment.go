package insight

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Segment is a customer-value tier derived from lifetime value
type Segment string

const (
	// SegmentAll is the filter sentinel that keeps every segment
	SegmentAll    Segment = "all"
	SegmentVIP    Segment = "vip"
	SegmentHigh   Segment = "high"
	SegmentMedium Segment = "medium"
	SegmentLow    Segment = "low"
)

// Lower bounds (inclusive) of each tier
var (
	VIPThreshold    = decimal.NewFromInt(50000)
	HighThreshold   = decimal.NewFromInt(20000)
	MediumThreshold = decimal.NewFromInt(5000)
)

// Segments lists the concrete tiers from highest to lowest
var Segments = []Segment{SegmentVIP, SegmentHigh, SegmentMedium, SegmentLow}

// SegmentFor maps a lifetime value to its tier; the highest matching threshold wins
func SegmentFor(lifetimeValue decimal.Decimal) Segment {
	switch {
	case lifetimeValue.GreaterThanOrEqual(VIPThreshold):
		return SegmentVIP
	case lifetimeValue.GreaterThanOrEqual(HighThreshold):
		return SegmentHigh
	case lifetimeValue.GreaterThanOrEqual(MediumThreshold):
		return SegmentMedium
	default:
		return SegmentLow
	}
}

// ParseSegmentFilter parses a segment filter. Empty input means SegmentAll.
func ParseSegmentFilter(raw string) (Segment, error) {
	s := Segment(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return SegmentAll, nil
	}
	if s == SegmentAll {
		return s, nil
	}
	for _, known := range Segments {
		if s == known {
			return s, nil
		}
	}
	return "", ErrInvalidSegment
}

// Matches reports whether an insight in segment other passes this filter
func (s Segment) Matches(other Segment) bool {
	return s == "" || s == SegmentAll || s == other
}

// String implements fmt.Stringer
func (s Segment) String() string {
	return string(s)
}
