package analysis

import (
	"marketpulse/server/internal/models"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionFlat = "flat"
)

// EstimateTrend fits an ordinary least-squares line to the monthly average
// prices, with x = sequence position of the month in the series. This is the
// single authoritative trend; every downstream component consumes it or
// recomputes it over a sub-window.
func EstimateTrend(stats []models.MonthlyStat) models.TrendResult {
	prices := make([]float64, len(stats))
	for i, s := range stats {
		prices[i] = s.AvgPrice
	}
	return fitLine(prices)
}

func fitLine(y []float64) models.TrendResult {
	n := len(y)
	if n < 2 {
		return models.TrendResult{Direction: DirectionFlat}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	fn := float64(n)

	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return models.TrendResult{Direction: DirectionFlat}
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	var sumYY, ssRes float64
	for i, v := range y {
		sumYY += v * v
		resid := v - (slope*float64(i) + intercept)
		ssRes += resid * resid
	}
	ssTot := sumYY - sumY*sumY/fn

	var rSquared float64
	if ssTot != 0 {
		rSquared = 1 - ssRes/ssTot
	}
	// Floating noise can push the ratio slightly out of range.
	if rSquared < 0 {
		rSquared = 0
	} else if rSquared > 1 {
		rSquared = 1
	}

	meanY := sumY / fn
	var annualPct float64
	if meanY != 0 {
		annualPct = slope * 12 / meanY * 100
	}

	direction := DirectionFlat
	if slope > 0 {
		direction = DirectionUp
	} else if slope < 0 {
		direction = DirectionDown
	}

	return models.TrendResult{
		Slope:           slope,
		Intercept:       intercept,
		RSquared:        rSquared,
		AnnualChangePct: annualPct,
		Direction:       direction,
	}
}
