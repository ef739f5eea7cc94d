package analysis

import (
	"marketpulse/server/internal/models"
)

// CalculateAppreciation computes trailing simple percentage changes over the
// 3/6/12-month windows plus an average monthly rate.
//
// The lookback index for a k-month window is n-1-(k+1), one month further
// back than the window name suggests. The convention is kept as-is because
// published report numbers were produced with it.
func CalculateAppreciation(stats []models.MonthlyStat) models.AppreciationResult {
	n := len(stats)
	if n < 2 {
		return models.AppreciationResult{}
	}
	current := stats[n-1].AvgPrice

	result := models.AppreciationResult{
		ThreeMonth: windowChange(stats, 3),
		SixMonth:   windowChange(stats, 6),
	}

	if idx := n - 1 - 13; idx >= 0 {
		result.TwelveMonth = pctChange(stats[idx].AvgPrice, current)
	} else {
		// Not enough history for a true 12-month figure: annualize the change
		// from the oldest available month instead.
		monthsElapsed := float64(n - 1)
		raw := pctChange(stats[0].AvgPrice, current)
		result.TwelveMonth = raw * (12 / monthsElapsed)
	}

	result.AverageMonthly = pctChange(stats[0].AvgPrice, current) / float64(n-1)
	return result
}

// windowChange is the trailing change for a k-month window, 0 when the series
// is too short.
func windowChange(stats []models.MonthlyStat, k int) float64 {
	n := len(stats)
	idx := n - 1 - (k + 1)
	if idx < 0 {
		return 0
	}
	return pctChange(stats[idx].AvgPrice, stats[n-1].AvgPrice)
}
