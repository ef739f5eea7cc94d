package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"marketpulse/server/internal/models"
)

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// GetClosedSales returns closed-sale records matching the filter, ordered by
// close date ascending. This is the read interface the forecasting engine
// consumes.
func (d *Database) GetClosedSales(ctx context.Context, filter models.SaleFilter) ([]models.SaleRecord, error) {
	query := `
        SELECT id, url, street, city, state, postal_code, property_type,
               close_price, close_date, building_area, days_on_market,
               COALESCE(created_at, CURRENT_TIMESTAMP) as created_at
        FROM sales
        WHERE close_price > 0
        AND (? = '' OR LOWER(city) = LOWER(?))
        AND (? = '' OR LOWER(state) = LOWER(?))
        AND (? = '' OR LOWER(property_type) = LOWER(?))
    `
	var args []interface{}
	args = append(args,
		filter.City, filter.City,
		filter.State, filter.State,
		filter.PropertyType, filter.PropertyType,
	)

	if !filter.Since.IsZero() {
		query += " AND close_date >= ?"
		args = append(args, filter.Since.Format("2006-01-02"))
	}

	query += " ORDER BY close_date ASC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.SaleRecord
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// GetRecentSales returns the most recently closed sales matching the filter.
func (d *Database) GetRecentSales(ctx context.Context, limit int, filter models.SaleFilter) ([]models.SaleRecord, error) {
	query := `
        SELECT id, url, street, city, state, postal_code, property_type,
               close_price, close_date, building_area, days_on_market,
               COALESCE(created_at, CURRENT_TIMESTAMP) as created_at
        FROM sales
        WHERE (? = '' OR LOWER(city) = LOWER(?))
        AND (? = '' OR LOWER(state) = LOWER(?))
        AND (? = '' OR LOWER(property_type) = LOWER(?))
    `
	var args []interface{}
	args = append(args,
		filter.City, filter.City,
		filter.State, filter.State,
		filter.PropertyType, filter.PropertyType,
	)

	if !filter.Since.IsZero() {
		query += " AND close_date >= ?"
		args = append(args, filter.Since.Format("2006-01-02"))
	}

	query += " ORDER BY close_date DESC LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.SaleRecord
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// GetMarketStats aggregates headline statistics over the filtered sales.
func (d *Database) GetMarketStats(ctx context.Context, filter models.SaleFilter) (models.MarketStats, error) {
	query := `
        SELECT
            COUNT(*) as total_sales,
            COALESCE(AVG(close_price), 0) as average_price,
            COALESCE(AVG(days_on_market), 0) as avg_days_on_market,
            COALESCE(AVG(close_price / NULLIF(building_area, 0)), 0) as price_per_sqm
        FROM sales
        WHERE close_price > 0
        AND (? = '' OR LOWER(city) = LOWER(?))
        AND (? = '' OR LOWER(state) = LOWER(?))
        AND (? = '' OR LOWER(property_type) = LOWER(?))
    `
	var args []interface{}
	args = append(args,
		filter.City, filter.City,
		filter.State, filter.State,
		filter.PropertyType, filter.PropertyType,
	)

	if !filter.Since.IsZero() {
		query += " AND close_date >= ?"
		args = append(args, filter.Since.Format("2006-01-02"))
	}

	var stats models.MarketStats
	err := d.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalSales,
		&stats.AveragePrice,
		&stats.AvgDaysOnMarket,
		&stats.PricePerSqm,
	)
	if err != nil {
		return stats, err
	}

	if stats.TotalSales > 0 {
		median, err := d.medianPrice(ctx, filter)
		if err != nil {
			return stats, err
		}
		stats.MedianPrice = median
	}
	return stats, nil
}

func (d *Database) medianPrice(ctx context.Context, filter models.SaleFilter) (float64, error) {
	where := `
        WHERE close_price > 0
        AND (? = '' OR LOWER(city) = LOWER(?))
        AND (? = '' OR LOWER(state) = LOWER(?))
        AND (? = '' OR LOWER(property_type) = LOWER(?))
        AND (? = '' OR close_date >= ?)
    `
	query := `
        SELECT AVG(close_price) FROM (
            SELECT close_price FROM sales ` + where + `
            ORDER BY close_price
            LIMIT 2 - (SELECT COUNT(*) FROM sales ` + where + `) % 2
            OFFSET (SELECT (COUNT(*) - 1) / 2 FROM sales ` + where + `)
        )
    `
	since := ""
	if !filter.Since.IsZero() {
		since = filter.Since.Format("2006-01-02")
	}

	var args []interface{}
	for i := 0; i < 3; i++ {
		args = append(args,
			filter.City, filter.City,
			filter.State, filter.State,
			filter.PropertyType, filter.PropertyType,
			since, since,
		)
	}

	var median sql.NullFloat64
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&median); err != nil {
		return 0, err
	}
	return median.Float64, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSale(row rowScanner) (models.SaleRecord, error) {
	var s models.SaleRecord
	var street, city, state, postalCode, propertyType sql.NullString
	var closeDate, createdAt sql.NullTime
	var buildingArea sql.NullFloat64
	var daysOnMarket sql.NullInt64

	err := row.Scan(
		&s.ID,
		&s.URL,
		&street,
		&city,
		&state,
		&postalCode,
		&propertyType,
		&s.ClosePrice,
		&closeDate,
		&buildingArea,
		&daysOnMarket,
		&createdAt,
	)
	if err != nil {
		return s, err
	}

	if street.Valid {
		s.Street = street.String
	}
	if city.Valid {
		s.City = city.String
	}
	if state.Valid {
		s.State = state.String
	}
	if postalCode.Valid {
		s.PostalCode = postalCode.String
	}
	if propertyType.Valid {
		s.PropertyType = propertyType.String
	}

	if buildingArea.Valid {
		area := buildingArea.Float64
		s.BuildingArea = &area
	}
	if daysOnMarket.Valid {
		dom := int(daysOnMarket.Int64)
		s.DaysOnMarket = &dom
	}

	if closeDate.Valid {
		s.CloseDate = closeDate.Time
	}
	if createdAt.Valid {
		s.CreatedAt = createdAt.Time
	}

	return s, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}

// GetRegions returns all configured market regions with their cities.
func (d *Database) GetRegions() ([]models.Region, error) {
	rows, err := d.db.Query(`
		SELECT r.id, r.name, GROUP_CONCAT(rc.city, ',') as cities
		FROM regions r
		LEFT JOIN region_cities rc ON r.id = rc.region_id
		GROUP BY r.id, r.name
		ORDER BY r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query regions: %v", err)
	}
	defer rows.Close()

	var regions []models.Region
	for rows.Next() {
		var region models.Region
		var citiesStr sql.NullString
		if err := rows.Scan(&region.ID, &region.Name, &citiesStr); err != nil {
			return nil, fmt.Errorf("failed to scan region: %v", err)
		}
		if citiesStr.Valid && citiesStr.String != "" {
			region.Cities = strings.Split(citiesStr.String, ",")
		} else {
			region.Cities = []string{}
		}
		regions = append(regions, region)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating regions: %v", err)
	}

	return regions, nil
}

// GetRegionByName returns a specific region by name, or nil when not found.
func (d *Database) GetRegionByName(name string) (*models.Region, error) {
	var region models.Region
	var citiesStr sql.NullString

	err := d.db.QueryRow(`
		SELECT r.id, r.name, GROUP_CONCAT(rc.city) as cities
		FROM regions r
		LEFT JOIN region_cities rc ON r.id = rc.region_id
		WHERE r.name = ?
		GROUP BY r.id, r.name
	`, name).Scan(&region.ID, &region.Name, &citiesStr)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query region: %v", err)
	}

	if citiesStr.Valid && citiesStr.String != "" {
		region.Cities = strings.Split(citiesStr.String, ",")
	} else {
		region.Cities = []string{}
	}

	return &region, nil
}

// UpdateRegion updates or creates a region and replaces its city list.
func (d *Database) UpdateRegion(region models.Region) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRow("SELECT id FROM regions WHERE name = ?", region.Name).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing region: %v", err)
	}

	var id int64
	if err == sql.ErrNoRows {
		result, err := tx.Exec("INSERT INTO regions (name) VALUES (?)", region.Name)
		if err != nil {
			return fmt.Errorf("failed to insert region: %v", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get region ID: %v", err)
		}
	} else {
		id = existingID
	}

	_, err = tx.Exec("DELETE FROM region_cities WHERE region_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete existing cities: %v", err)
	}

	for _, city := range region.Cities {
		_, err = tx.Exec(`
			INSERT INTO region_cities (region_id, city)
			VALUES (?, ?)
		`, id, city)
		if err != nil {
			return fmt.Errorf("failed to insert city: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

// DeleteRegion deletes a region and its cities.
func (d *Database) DeleteRegion(name string) error {
	result, err := d.db.Exec("DELETE FROM regions WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete region: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("region not found: %s", name)
	}

	return nil
}

// GetCitiesInRegion returns the cities belonging to a named region.
func (d *Database) GetCitiesInRegion(name string) ([]string, error) {
	rows, err := d.db.Query(`
		SELECT rc.city
		FROM region_cities rc
		JOIN regions r ON rc.region_id = r.id
		WHERE r.name = ?
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %v", err)
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("failed to scan city: %v", err)
		}
		cities = append(cities, city)
	}

	return cities, nil
}
