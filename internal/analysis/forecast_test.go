package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForecastPrices_Horizons(t *testing.T) {
	stats := monthlySeries([]float64{300000, 301000, 302000, 303000, 304000, 305000})
	trend := EstimateTrend(stats)

	points := ForecastPrices(stats, trend, 12)
	assert.Len(t, points, 3)
	assert.Equal(t, 3, points[0].MonthsAhead)
	assert.Equal(t, 6, points[1].MonthsAhead)
	assert.Equal(t, 12, points[2].MonthsAhead)

	// Only horizons within the requested window are produced.
	points = ForecastPrices(stats, trend, 6)
	assert.Len(t, points, 2)

	points = ForecastPrices(stats, trend, 1)
	assert.Empty(t, points)
}

func TestForecastPrices_LinearContinuity(t *testing.T) {
	// For a perfect fit the projection continues the observed line exactly.
	prices := make([]float64, 12)
	for i := range prices {
		prices[i] = 300000 + 1000*float64(i)
	}
	stats := monthlySeries(prices)
	trend := EstimateTrend(stats)

	points := ForecastPrices(stats, trend, 12)
	assert.Len(t, points, 3)
	assert.InDelta(t, 314000, points[0].PredictedPrice, 1e-6) // index 11+3
	assert.InDelta(t, 317000, points[1].PredictedPrice, 1e-6)
	assert.InDelta(t, 323000, points[2].PredictedPrice, 1e-6)

	assert.InDelta(t, 12000, points[2].ChangeFromCurrent, 1e-6)
	assert.InDelta(t, 12000/311000.0*100, points[2].ChangePct, 1e-9)
}

func TestForecastPrices_ConfidenceBand(t *testing.T) {
	prices := []float64{100000, 102000, 101000, 103000, 102500, 104000}
	stats := monthlySeries(prices)
	trend := EstimateTrend(stats)

	points := ForecastPrices(stats, trend, 3)
	assert.Len(t, points, 1)

	want := 2 * sampleStdDev(prices) * math.Sqrt(1+1.0/6)
	p := points[0]
	assert.InDelta(t, want, p.PredictedPrice-p.LowEstimate, 1e-9)
	assert.InDelta(t, want, p.HighEstimate-p.PredictedPrice, 1e-9)
}

func TestForecastPrices_Dates(t *testing.T) {
	stats := monthlySeries([]float64{300000, 301000, 302000})
	trend := EstimateTrend(stats)

	points := ForecastPrices(stats, trend, 12)
	assert.Equal(t, "2024-06", points[0].ForecastDate) // last month 2024-03 + 3
	assert.Equal(t, "2024-09", points[1].ForecastDate)
	assert.Equal(t, "2025-03", points[2].ForecastDate)
}

func TestForecastPrices_EmptySeries(t *testing.T) {
	assert.Nil(t, ForecastPrices(nil, EstimateTrend(nil), 12))
}

func TestAdvanceMonth_YearRollover(t *testing.T) {
	assert.Equal(t, "2025-02", advanceMonth("2024-11", 3))
	assert.Equal(t, "2026-01", advanceMonth("2025-01", 12))
}
