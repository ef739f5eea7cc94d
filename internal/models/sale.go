package models

import "time"

// SaleRecord is a single closed-sale listing as supplied by the listings store.
type SaleRecord struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	Street       string    `json:"street"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	PropertyType string    `json:"property_type"`
	ClosePrice   float64   `json:"close_price"`
	CloseDate    time.Time `json:"close_date"`
	BuildingArea *float64  `json:"building_area"`
	DaysOnMarket *int      `json:"days_on_market"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName maps the record onto the sales table for the gorm ingestion path.
func (SaleRecord) TableName() string {
	return "sales"
}

// SaleFilter narrows a closed-sale query. Empty string fields match everything;
// a zero Since disables the date cutoff.
type SaleFilter struct {
	City         string    `json:"city"`
	State        string    `json:"state"`
	PropertyType string    `json:"property_type"`
	Since        time.Time `json:"since"`
}

type MarketStats struct {
	TotalSales      int     `json:"total_sales"`
	AveragePrice    float64 `json:"average_price"`
	MedianPrice     float64 `json:"median_price"`
	AvgDaysOnMarket float64 `json:"avg_days_on_market"`
	PricePerSqm     float64 `json:"price_per_sqm"`
}

// Region groups cities into a named market area so forecasts can be
// requested for a metro area rather than a single city.
type Region struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}
