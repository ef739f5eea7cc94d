package analysis

import (
	"math"
	"time"

	"marketpulse/server/internal/models"
)

// forecastHorizons are the canonical forward offsets, in months.
var forecastHorizons = []int{3, 6, 12}

// ForecastPrices projects the fitted trend line forward for every canonical
// horizon within maxMonths. The confidence band is the historical price
// standard deviation widened for extrapolation by sqrt(1+1/n); historical
// reports depend on these exact numbers, so changing the band formula is a
// behavioral break for downstream consumers.
func ForecastPrices(stats []models.MonthlyStat, trend models.TrendResult, maxMonths int) []models.ForecastPoint {
	if len(stats) == 0 {
		return nil
	}

	prices := make([]float64, len(stats))
	for i, s := range stats {
		prices[i] = s.AvgPrice
	}
	n := len(prices)
	stddev := sampleStdDev(prices)
	confRange := 2 * stddev * math.Sqrt(1+1/float64(n))

	last := stats[n-1]
	lastIndex := n - 1
	currentPrice := last.AvgPrice

	var points []models.ForecastPoint
	for _, horizon := range forecastHorizons {
		if horizon > maxMonths {
			continue
		}
		predicted := trend.Slope*float64(lastIndex+horizon) + trend.Intercept
		points = append(points, models.ForecastPoint{
			MonthsAhead:       horizon,
			ForecastDate:      advanceMonth(last.Month, horizon),
			PredictedPrice:    predicted,
			LowEstimate:       predicted - confRange,
			HighEstimate:      predicted + confRange,
			ChangeFromCurrent: predicted - currentPrice,
			ChangePct:         pctChange(currentPrice, predicted),
		})
	}
	return points
}

// advanceMonth shifts a "YYYY-MM" label forward by the given number of
// calendar months.
func advanceMonth(month string, months int) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.AddDate(0, months, 0).Format("2006-01")
}
