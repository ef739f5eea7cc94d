package analysis

import (
	"fmt"
	"math"

	"marketpulse/server/internal/models"
)

const (
	MomentumInsufficientData = "insufficient_data"
	MomentumStable           = "stable"
	MomentumAccelerating     = "accelerating"
	MomentumStrengthening    = "strengthening"
	MomentumDeclining        = "declining"
	MomentumWeakening        = "weakening"
)

// minMomentumMonths is the shortest series that still supports a short-vs-long
// trend comparison.
const minMomentumMonths = 6

// AnalyzeMomentum compares the trend over the last 3 months against the trend
// over the last 12 (or all available) months and classifies whether the market
// is speeding up or slowing down.
func AnalyzeMomentum(stats []models.MonthlyStat) models.MomentumResult {
	n := len(stats)
	if n < minMomentumMonths {
		return models.MomentumResult{
			Status:      MomentumInsufficientData,
			Direction:   DirectionFlat,
			Description: "Not enough monthly data to assess market momentum",
		}
	}

	recent := EstimateTrend(stats[n-3:])
	longerWindow := n
	if longerWindow > 12 {
		longerWindow = 12
	}
	longer := EstimateTrend(stats[n-longerWindow:])

	diff := recent.AnnualChangePct - longer.AnnualChangePct

	var status string
	switch {
	case math.Abs(diff) < 2:
		status = MomentumStable
	case diff > 5:
		status = MomentumAccelerating
	case diff > 2:
		status = MomentumStrengthening
	case diff < -5:
		status = MomentumDeclining
	default:
		status = MomentumWeakening
	}

	// Strength is a display value; full precision stays in RecentPct.
	strength := math.Round(math.Abs(recent.AnnualChangePct)*10) / 10

	return models.MomentumResult{
		Status:        status,
		Direction:     recent.Direction,
		Strength:      strength,
		RecentPct:     recent.AnnualChangePct,
		LongerTermPct: longer.AnnualChangePct,
		MomentumDiff:  diff,
		Description:   momentumDescription(status, recent.Direction, strength),
	}
}

func momentumDescription(status, direction string, strength float64) string {
	switch status {
	case MomentumStable:
		return fmt.Sprintf("Market momentum is stable, trending %s at %.1f%% annualized", direction, strength)
	case MomentumAccelerating:
		return fmt.Sprintf("Market is accelerating, recent trend running %.1f%% annualized", strength)
	case MomentumStrengthening:
		return fmt.Sprintf("Market is strengthening, recent trend running %.1f%% annualized", strength)
	case MomentumDeclining:
		return fmt.Sprintf("Market is declining, recent trend running %.1f%% annualized", strength)
	default:
		return fmt.Sprintf("Market is weakening, recent trend running %.1f%% annualized", strength)
	}
}
