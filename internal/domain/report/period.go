package report

import (
	"strings"
	"time"

	"github.com/commerce/backend/internal/domain/shared"
)

// Period is the length of a sales report window
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// DefaultPeriod is used when no period is requested
const DefaultPeriod = PeriodMonth

// ErrInvalidPeriod is returned for an unknown period name
var ErrInvalidPeriod = shared.NewDomainError("INVALID_PERIOD", "period must be one of: day, week, month, quarter, year")

var periodLengths = map[Period]time.Duration{
	PeriodDay:     24 * time.Hour,
	PeriodWeek:    7 * 24 * time.Hour,
	PeriodMonth:   30 * 24 * time.Hour,
	PeriodQuarter: 90 * 24 * time.Hour,
	PeriodYear:    365 * 24 * time.Hour,
}

// ParsePeriod parses a period name case-insensitively. Empty input yields DefaultPeriod.
func ParsePeriod(raw string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return DefaultPeriod, nil
	}
	if _, ok := periodLengths[p]; !ok {
		return "", ErrInvalidPeriod
	}
	return p, nil
}

// Duration returns the window length of the period
func (p Period) Duration() time.Duration {
	return periodLengths[p]
}

// String implements fmt.Stringer
func (p Period) String() string {
	return string(p)
}

// Window is a half-open time range [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// Windows returns the trailing window ending at now and the equally long
// window immediately before it
func (p Period) Windows(now time.Time) (current, previous Window) {
	d := p.Duration()
	current = Window{Start: now.Add(-d), End: now}
	previous = Window{Start: current.Start.Add(-d), End: current.Start}
	return current, previous
}
