package analysis

import (
	"sort"
	"strings"

	"marketpulse/server/internal/models"
)

// MinMonthlySales is the smallest sample a calendar month needs before it is
// trusted enough to enter the trend series. Thinner months are dropped, not
// zero-filled, so the month axis may contain calendar gaps; regression runs
// over sequence positions, never over calendar offsets.
const MinMonthlySales = 3

// AggregateMonthly groups closed sales by calendar month and computes the
// per-month statistics the rest of the engine runs on. The returned sequence
// is ascending by month label and only contains months with at least
// MinMonthlySales qualifying sales.
func AggregateMonthly(records []models.SaleRecord, filter models.SaleFilter) []models.MonthlyStat {
	byMonth := make(map[string][]models.SaleRecord)
	for _, rec := range records {
		if !matchesFilter(rec, filter) {
			continue
		}
		month := rec.CloseDate.Format("2006-01")
		byMonth[month] = append(byMonth[month], rec)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		if len(byMonth[month]) >= MinMonthlySales {
			months = append(months, month)
		}
	}
	sort.Strings(months)

	stats := make([]models.MonthlyStat, 0, len(months))
	for _, month := range months {
		stats = append(stats, monthStat(month, byMonth[month]))
	}
	return stats
}

func matchesFilter(rec models.SaleRecord, filter models.SaleFilter) bool {
	if filter.City != "" && !strings.EqualFold(rec.City, filter.City) {
		return false
	}
	if filter.State != "" && !strings.EqualFold(rec.State, filter.State) {
		return false
	}
	if filter.PropertyType != "" && !strings.EqualFold(rec.PropertyType, filter.PropertyType) {
		return false
	}
	if !filter.Since.IsZero() && rec.CloseDate.Before(filter.Since) {
		return false
	}
	return true
}

func monthStat(month string, sales []models.SaleRecord) models.MonthlyStat {
	prices := make([]float64, len(sales))
	for i, s := range sales {
		prices[i] = s.ClosePrice
	}

	stat := models.MonthlyStat{
		Month:       month,
		SalesCount:  len(sales),
		AvgPrice:    mean(prices),
		PriceStdDev: sampleStdDev(prices),
		MinPrice:    prices[0],
		MaxPrice:    prices[0],
	}
	for _, p := range prices {
		if p < stat.MinPrice {
			stat.MinPrice = p
		}
		if p > stat.MaxPrice {
			stat.MaxPrice = p
		}
	}

	var perSqm []float64
	var domSum float64
	var domCount int
	for _, s := range sales {
		if s.BuildingArea != nil && *s.BuildingArea > 0 {
			perSqm = append(perSqm, s.ClosePrice / *s.BuildingArea)
		}
		if s.DaysOnMarket != nil {
			domSum += float64(*s.DaysOnMarket)
			domCount++
		}
	}
	if len(perSqm) > 0 {
		avg := mean(perSqm)
		stat.AvgPricePerSqm = &avg
	}
	if domCount > 0 {
		stat.AvgDaysOnMkt = domSum / float64(domCount)
	}
	return stat
}
