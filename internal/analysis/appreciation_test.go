package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateAppreciation_RisingSeries(t *testing.T) {
	// 14 months rising at 1000/month: all windows have full history.
	prices := make([]float64, 14)
	for i := range prices {
		prices[i] = 300000 + 1000*float64(i)
	}

	appr := CalculateAppreciation(monthlySeries(prices))

	assert.Greater(t, appr.ThreeMonth, 0.0)
	assert.Greater(t, appr.SixMonth, 0.0)
	assert.Greater(t, appr.TwelveMonth, 0.0)
	assert.Greater(t, appr.AverageMonthly, 0.0)

	// Windows look back k+1 positions from the current month.
	current := prices[13]
	assert.InDelta(t, (current-prices[9])/prices[9]*100, appr.ThreeMonth, 1e-9)
	assert.InDelta(t, (current-prices[6])/prices[6]*100, appr.SixMonth, 1e-9)
	assert.InDelta(t, (current-prices[0])/prices[0]*100, appr.TwelveMonth, 1e-9)
	assert.InDelta(t, (current-prices[0])/prices[0]*100/13, appr.AverageMonthly, 1e-9)
}

func TestCalculateAppreciation_TwelveMonthFallback(t *testing.T) {
	// Only 7 months of history: the 12-month figure is annualized from the
	// oldest point by 12/monthsElapsed.
	prices := []float64{300000, 301000, 302000, 303000, 304000, 305000, 306000}

	appr := CalculateAppreciation(monthlySeries(prices))

	raw := (306000.0 - 300000.0) / 300000.0 * 100
	assert.InDelta(t, raw*(12.0/6.0), appr.TwelveMonth, 1e-9)

	// 3-month window still has data, 6-month does not.
	assert.InDelta(t, (306000.0-302000.0)/302000.0*100, appr.ThreeMonth, 1e-9)
	assert.Equal(t, 0.0, appr.SixMonth)
}

func TestCalculateAppreciation_InsufficientHistory(t *testing.T) {
	assert.Equal(t, 0.0, CalculateAppreciation(nil).TwelveMonth)

	appr := CalculateAppreciation(monthlySeries([]float64{400000}))
	assert.Zero(t, appr.ThreeMonth)
	assert.Zero(t, appr.TwelveMonth)
	assert.Zero(t, appr.AverageMonthly)
}

func TestCalculateAppreciation_ZeroBasePrice(t *testing.T) {
	// A zero starting price must not produce Inf or NaN.
	appr := CalculateAppreciation(monthlySeries([]float64{0, 100000, 200000}))

	assert.Equal(t, 0.0, appr.TwelveMonth)
	assert.Equal(t, 0.0, appr.AverageMonthly)
}
