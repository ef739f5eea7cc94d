package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"marketpulse/server/internal/models"
)

const (
	// MinMonths is the fewest qualifying months a forecast needs.
	MinMonths = 3

	// DefaultLookbackMonths and DefaultForecastMonths are applied when a
	// query leaves them unset.
	DefaultLookbackMonths = 24
	DefaultForecastMonths = 12
)

// RecordSource supplies closed-sale records, typically backed by the listings
// database. Implementations must apply the filter's equality and date
// constraints.
type RecordSource interface {
	GetClosedSales(ctx context.Context, filter models.SaleFilter) ([]models.SaleRecord, error)
}

// ForecastQuery identifies the market slice a forecast is computed over.
type ForecastQuery struct {
	City           string `json:"city"`
	State          string `json:"state"`
	PropertyType   string `json:"property_type"`
	LookbackMonths int    `json:"lookback_months"`
	ForecastMonths int    `json:"forecast_months"`
}

// CacheKey is a stable identifier for the query, used by the caller-owned
// result cache.
func (q ForecastQuery) CacheKey() string {
	return fmt.Sprintf("forecast:%s|%s|%s|%d|%d",
		q.City, q.State, q.PropertyType, q.LookbackMonths, q.ForecastMonths)
}

// Service runs the forecasting and valuation engine over a record source.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	source RecordSource
	logger *logrus.Logger
	now    func() time.Time
}

func NewService(source RecordSource, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// GetPriceForecast aggregates the requested market slice into monthly
// statistics and derives trend, forward forecast, appreciation, momentum and
// confidence. Too little history yields a structured failure result, not an
// error, so callers can render partial reports.
func (s *Service) GetPriceForecast(ctx context.Context, query ForecastQuery) (*models.ForecastResult, error) {
	if query.LookbackMonths <= 0 {
		query.LookbackMonths = DefaultLookbackMonths
	}
	if query.ForecastMonths <= 0 {
		query.ForecastMonths = DefaultForecastMonths
	}

	filter := models.SaleFilter{
		City:         query.City,
		State:        query.State,
		PropertyType: query.PropertyType,
		Since:        s.now().AddDate(0, -query.LookbackMonths, 0),
	}

	records, err := s.source.GetClosedSales(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load closed sales: %w", err)
	}

	stats := AggregateMonthly(records, filter)
	if len(stats) < MinMonths {
		s.logger.WithFields(logrus.Fields{
			"city":        query.City,
			"data_points": len(stats),
		}).Debug("Not enough monthly data for forecast")
		return &models.ForecastResult{
			Success:     false,
			Message:     fmt.Sprintf("need at least %d months of sales data, have %d", MinMonths, len(stats)),
			MinRequired: MinMonths,
			DataPoints:  len(stats),
		}, nil
	}

	trend := EstimateTrend(stats)
	forecast := ForecastPrices(stats, trend, query.ForecastMonths)
	appreciation := CalculateAppreciation(stats)
	momentum := AnalyzeMomentum(stats)
	confidence := ScoreConfidence(stats, trend)

	latest := stats[len(stats)-1]
	return &models.ForecastResult{
		Success:      true,
		Trend:        &trend,
		Forecast:     forecast,
		Appreciation: &appreciation,
		Momentum:     &momentum,
		Confidence:   &confidence,
		CurrentPrice: latest.AvgPrice,
		CurrentMonth: latest.Month,
		DataPoints:   len(stats),
	}, nil
}

// GetInvestmentAnalysis projects a property's value over the standard year
// horizons using a forecast computed with the fixed 24-month lookback and
// 12-month horizon, and rates the investment risk.
func (s *Service) GetInvestmentAnalysis(ctx context.Context, currentValue float64, query ForecastQuery) (*models.InvestmentResult, error) {
	if currentValue <= 0 {
		return nil, fmt.Errorf("current value must be positive, got %.2f", currentValue)
	}

	query.LookbackMonths = DefaultLookbackMonths
	query.ForecastMonths = DefaultForecastMonths

	forecast, err := s.GetPriceForecast(ctx, query)
	if err != nil {
		return nil, err
	}
	return BuildInvestmentAnalysis(currentValue, forecast), nil
}
