package analysis

import (
	"fmt"
	"math"

	"marketpulse/server/internal/models"
)

const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskElevated = "elevated"
	RiskHigh     = "high"
)

// investmentHorizons are the projection horizons in years.
var investmentHorizons = []int{1, 3, 5, 10}

// BuildInvestmentAnalysis compounds the forecast's annualized trend rate over
// the standard year horizons and derives a risk rating from the forecast's
// volatility, trend, momentum and confidence. A failed forecast is passed
// through unchanged.
func BuildInvestmentAnalysis(currentValue float64, forecast *models.ForecastResult) *models.InvestmentResult {
	if !forecast.Success {
		return &models.InvestmentResult{
			Success:     false,
			Message:     forecast.Message,
			MinRequired: forecast.MinRequired,
			DataPoints:  forecast.DataPoints,
		}
	}

	annualRate := forecast.Trend.AnnualChangePct
	projected := make(map[string]models.ProjectedValue, len(investmentHorizons))
	for _, years := range investmentHorizons {
		factor := math.Pow(1+annualRate/100, float64(years))
		value := currentValue * factor
		appreciation := value - currentValue
		projected[fmt.Sprintf("%d_year", years)] = models.ProjectedValue{
			Value:           value,
			Appreciation:    appreciation,
			AppreciationPct: appreciation / currentValue * 100,
		}
	}

	return &models.InvestmentResult{
		Success:                true,
		CurrentValue:           currentValue,
		AnnualAppreciationRate: annualRate,
		ProjectedValues:        projected,
		RiskAssessment:         assessRisk(forecast),
	}
}

func assessRisk(forecast *models.ForecastResult) *models.RiskAssessment {
	volatility := forecast.Confidence.Volatility

	var score float64
	if volatility > 0.20 {
		score += 30
	} else if volatility > 0.10 {
		score += 15
	}

	switch forecast.Trend.Direction {
	case DirectionDown:
		score += 25
	case DirectionFlat:
		score += 10
	}

	switch forecast.Momentum.Status {
	case MomentumDeclining:
		score += 20
	case MomentumWeakening:
		score += 10
	}

	switch forecast.Confidence.Level {
	case ConfidenceLow:
		score += 15
	case ConfidenceMedium:
		score += 5
	}

	var level, description string
	switch {
	case score < 20:
		level = RiskLow
		description = "Low risk: stable prices and a steady upward trend"
	case score < 40:
		level = RiskMedium
		description = "Medium risk: some volatility or softening in the market trend"
	case score < 60:
		level = RiskElevated
		description = "Elevated risk: notable volatility or a weakening market"
	default:
		level = RiskHigh
		description = "High risk: volatile prices in a declining market"
	}

	return &models.RiskAssessment{
		Score:       score,
		Level:       level,
		Description: description,
		Factors: models.RiskFactors{
			Volatility:     volatility,
			TrendDirection: forecast.Trend.Direction,
			MomentumStatus: forecast.Momentum.Status,
		},
	}
}
