package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketpulse/server/internal/models"
)

func saleAt(city string, price float64, year int, month time.Month) models.SaleRecord {
	return models.SaleRecord{
		City:         city,
		ClosePrice:   price,
		CloseDate:    time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
		PropertyType: "house",
	}
}

func TestAggregateMonthly_MonotonicMonths(t *testing.T) {
	var records []models.SaleRecord
	// Three qualifying months supplied out of order.
	for _, m := range []time.Month{time.March, time.January, time.February} {
		for i := 0; i < 4; i++ {
			records = append(records, saleAt("austin", 400000+float64(i)*1000, 2025, m))
		}
	}

	stats := AggregateMonthly(records, models.SaleFilter{})

	assert.Len(t, stats, 3)
	for i, s := range stats {
		assert.GreaterOrEqual(t, s.SalesCount, MinMonthlySales)
		if i > 0 {
			assert.Less(t, stats[i-1].Month, s.Month)
		}
	}
	assert.Equal(t, "2025-01", stats[0].Month)
	assert.Equal(t, "2025-03", stats[2].Month)
}

func TestAggregateMonthly_DropsThinMonths(t *testing.T) {
	records := []models.SaleRecord{
		saleAt("austin", 400000, 2025, time.January),
		saleAt("austin", 410000, 2025, time.January),
		saleAt("austin", 420000, 2025, time.January),
		// February has only two sales and must be dropped, not zero-filled.
		saleAt("austin", 430000, 2025, time.February),
		saleAt("austin", 440000, 2025, time.February),
		saleAt("austin", 450000, 2025, time.March),
		saleAt("austin", 460000, 2025, time.March),
		saleAt("austin", 470000, 2025, time.March),
	}

	stats := AggregateMonthly(records, models.SaleFilter{})

	assert.Len(t, stats, 2)
	assert.Equal(t, "2025-01", stats[0].Month)
	assert.Equal(t, "2025-03", stats[1].Month)
}

func TestAggregateMonthly_Stats(t *testing.T) {
	area := 100.0
	dom := 30
	records := []models.SaleRecord{
		{City: "austin", ClosePrice: 100000, CloseDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), BuildingArea: &area, DaysOnMarket: &dom},
		{City: "austin", ClosePrice: 200000, CloseDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{City: "austin", ClosePrice: 300000, CloseDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
	}

	stats := AggregateMonthly(records, models.SaleFilter{})

	assert.Len(t, stats, 1)
	s := stats[0]
	assert.Equal(t, 3, s.SalesCount)
	assert.InDelta(t, 200000, s.AvgPrice, 1e-9)
	assert.InDelta(t, 100000, s.PriceStdDev, 1e-6) // sample stddev, n-1
	assert.Equal(t, 100000.0, s.MinPrice)
	assert.Equal(t, 300000.0, s.MaxPrice)
	// Only the record with a known area contributes to price per sqm.
	if assert.NotNil(t, s.AvgPricePerSqm) {
		assert.InDelta(t, 1000, *s.AvgPricePerSqm, 1e-9)
	}
	assert.InDelta(t, 30, s.AvgDaysOnMkt, 1e-9)
}

func TestAggregateMonthly_NilPricePerSqmWhenAreaUnknown(t *testing.T) {
	records := []models.SaleRecord{
		saleAt("austin", 400000, 2025, time.January),
		saleAt("austin", 410000, 2025, time.January),
		saleAt("austin", 420000, 2025, time.January),
	}

	stats := AggregateMonthly(records, models.SaleFilter{})

	assert.Len(t, stats, 1)
	assert.Nil(t, stats[0].AvgPricePerSqm)
}

func TestAggregateMonthly_Filters(t *testing.T) {
	var records []models.SaleRecord
	for i := 0; i < 3; i++ {
		records = append(records, saleAt("Austin", 400000, 2025, time.January))
		records = append(records, saleAt("Dallas", 300000, 2025, time.January))
	}

	stats := AggregateMonthly(records, models.SaleFilter{City: "austin"})

	assert.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].SalesCount)
	assert.InDelta(t, 400000, stats[0].AvgPrice, 1e-9)
}

func TestAggregateMonthly_SinceCutoff(t *testing.T) {
	var records []models.SaleRecord
	for i := 0; i < 3; i++ {
		records = append(records, saleAt("austin", 400000, 2023, time.June))
		records = append(records, saleAt("austin", 500000, 2025, time.June))
	}

	stats := AggregateMonthly(records, models.SaleFilter{
		Since: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Len(t, stats, 1)
	assert.Equal(t, "2025-06", stats[0].Month)
}
