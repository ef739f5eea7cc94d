package database

import "fmt"

func (d *Database) RunMigrations() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT UNIQUE NOT NULL,
			street TEXT,
			city TEXT,
			state TEXT,
			postal_code TEXT,
			property_type TEXT,
			close_price REAL NOT NULL,
			close_date DATE NOT NULL,
			building_area REAL,
			days_on_market INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create sales table: %v", err)
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sales_close_date
		ON sales(close_date);
	`)
	if err != nil {
		return err
	}

	// Covers the city/state/type equality filters used by forecast queries.
	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sales_location
		ON sales(city, state, property_type);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS regions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create regions table: %v", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS region_cities (
			region_id INTEGER,
			city TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (region_id, city)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create region_cities table: %v", err)
	}

	return nil
}
