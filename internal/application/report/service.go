package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/commerce/backend/internal/domain/report"
	"go.uber.org/zap"
)

// Operation names reported in retrieval errors
const (
	OpPeriodTotals = "sales period totals"
	OpDailySales   = "daily sales"
)

// Cache stores serialized reports. A miss returns ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Config contains configuration for SalesReportService
type Config struct {
	// CacheTTL is how long a generated report is served from cache; 0 disables caching.
	// Entries never outlive the resolution slot they were keyed on.
	CacheTTL time.Duration
	// Resolution truncates the report end time so that requests within the
	// same slot share one cached report
	Resolution time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		CacheTTL:   time.Minute,
		Resolution: time.Minute,
	}
}

// SalesReportService builds period-over-period sales reports
type SalesReportService struct {
	repo   report.SalesReportRepository
	cache  Cache
	logger *zap.Logger
	config Config
	now    func() time.Time
}

// NewSalesReportService creates a new SalesReportService. cache may be nil.
func NewSalesReportService(repo report.SalesReportRepository, cache Cache, logger *zap.Logger, config Config) *SalesReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Resolution <= 0 {
		config.Resolution = time.Second
	}
	return &SalesReportService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		config: config,
		now:    time.Now,
	}
}

// GetSalesReport returns the report for the trailing period ending now
func (s *SalesReportService) GetSalesReport(ctx context.Context, period report.Period) (*SalesReportResponse, error) {
	asOf := s.now().UTC().Truncate(s.config.Resolution)
	key := cacheKey(period, asOf)

	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	current, previous := period.Windows(asOf)

	cur, err := s.repo.GetPeriodTotals(ctx, current)
	if err != nil {
		return nil, s.retrievalFailed(OpPeriodTotals, err)
	}
	prev, err := s.repo.GetPeriodTotals(ctx, previous)
	if err != nil {
		return nil, s.retrievalFailed(OpPeriodTotals, err)
	}
	daily, err := s.repo.GetDailySales(ctx, current)
	if err != nil {
		return nil, s.retrievalFailed(OpDailySales, err)
	}

	resp := toSalesReportResponse(report.BuildSalesReport(period, current, previous, cur, prev, daily), asOf)
	s.toCache(ctx, key, asOf, resp)
	return resp, nil
}

func cacheKey(period report.Period, asOf time.Time) string {
	return fmt.Sprintf("sales:%s:%d", period, asOf.Unix())
}

func (s *SalesReportService) fromCache(ctx context.Context, key string) (*SalesReportResponse, bool) {
	if s.cache == nil || s.config.CacheTTL <= 0 {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Sales report cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var resp SalesReportResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		s.logger.Warn("Discarding undecodable cached sales report", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &resp, true
}

func (s *SalesReportService) toCache(ctx context.Context, key string, asOf time.Time, resp *SalesReportResponse) {
	if s.cache == nil || s.config.CacheTTL <= 0 {
		return
	}
	// the key changes when the slot rolls over, so time past it is unreachable
	ttl := min(s.config.CacheTTL, asOf.Add(s.config.Resolution).Sub(s.now().UTC()))
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("Failed to encode sales report for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, ttl); err != nil {
		s.logger.Warn("Sales report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *SalesReportService) retrievalFailed(op string, err error) error {
	s.logger.Error("Sales report retrieval failed", zap.String("op", op), zap.Error(err))
	return report.NewRetrievalError(op, err)
}
