package analysis

import (
	"marketpulse/server/internal/models"
)

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ScoreConfidence rates how much the forecast deserves to be trusted,
// combining fit quality, price volatility and sample size into a 0-100 score.
func ScoreConfidence(stats []models.MonthlyStat, trend models.TrendResult) models.ConfidenceResult {
	prices := make([]float64, len(stats))
	for i, s := range stats {
		prices[i] = s.AvgPrice
	}
	n := len(prices)

	// Coefficient of variation; a zero mean gets the maximal penalty rather
	// than producing Inf.
	cv := 1.0
	if m := mean(prices); m != 0 {
		cv = sampleStdDev(prices) / m
	}

	score := 100.0
	score -= (1 - trend.RSquared) * 40

	if cv > 0.20 {
		score -= 20
	} else if cv > 0.10 {
		score -= 10
	}

	if n < 6 {
		score -= 20
	} else if n < 12 {
		score -= 10
	}

	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	level := ConfidenceLow
	description := "Low confidence: weak trend fit, high volatility or limited sales history"
	if score >= 80 {
		level = ConfidenceHigh
		description = "High confidence: strong trend fit over a stable, well-sampled market"
	} else if score >= 60 {
		level = ConfidenceMedium
		description = "Medium confidence: usable trend with moderate volatility or limited history"
	}

	return models.ConfidenceResult{
		Score:       score,
		Level:       level,
		RSquared:    trend.RSquared,
		Volatility:  cv,
		DataPoints:  n,
		Description: description,
	}
}
