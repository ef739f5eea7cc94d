package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"marketpulse/server/internal/models"
)

func monthlySeries(prices []float64) []models.MonthlyStat {
	stats := make([]models.MonthlyStat, len(prices))
	for i, p := range prices {
		stats[i] = models.MonthlyStat{
			Month:      fmt.Sprintf("2024-%02d", i+1),
			SalesCount: 10,
			AvgPrice:   p,
		}
	}
	return stats
}

func TestEstimateTrend_PerfectLinearSeries(t *testing.T) {
	prices := make([]float64, 12)
	for i := range prices {
		prices[i] = 100000 + 1000*float64(i)
	}

	trend := EstimateTrend(monthlySeries(prices))

	assert.InDelta(t, 1000, trend.Slope, 1e-6)
	assert.InDelta(t, 100000, trend.Intercept, 1e-6)
	assert.InDelta(t, 1.0, trend.RSquared, 1e-9)
	assert.Equal(t, DirectionUp, trend.Direction)
	// slope*12/mean(y)*100 with mean = 105500
	assert.InDelta(t, 1000*12/105500.0*100, trend.AnnualChangePct, 1e-9)
}

func TestEstimateTrend_ConstantSeries(t *testing.T) {
	trend := EstimateTrend(monthlySeries([]float64{250000, 250000, 250000, 250000}))

	assert.InDelta(t, 0, trend.Slope, 1e-9)
	// SS_tot is 0 for a constant series, so r-squared is defined as 0.
	assert.Equal(t, 0.0, trend.RSquared)
	assert.Equal(t, DirectionFlat, trend.Direction)
	assert.Equal(t, 0.0, trend.AnnualChangePct)
}

func TestEstimateTrend_DecliningSeries(t *testing.T) {
	trend := EstimateTrend(monthlySeries([]float64{300000, 298000, 296000, 294000}))

	assert.InDelta(t, -2000, trend.Slope, 1e-6)
	assert.Equal(t, DirectionDown, trend.Direction)
	assert.Less(t, trend.AnnualChangePct, 0.0)
}

func TestEstimateTrend_ShortSeries(t *testing.T) {
	assert.Equal(t, models.TrendResult{Direction: DirectionFlat}, EstimateTrend(nil))
	assert.Equal(t, models.TrendResult{Direction: DirectionFlat}, EstimateTrend(monthlySeries([]float64{400000})))
}

func TestEstimateTrend_RSquaredWithinBounds(t *testing.T) {
	// Noisy series must still produce a clamped r-squared.
	trend := EstimateTrend(monthlySeries([]float64{100, 500, 120, 480, 90, 510}))

	assert.GreaterOrEqual(t, trend.RSquared, 0.0)
	assert.LessOrEqual(t, trend.RSquared, 1.0)
}
