package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketpulse/server/internal/models"
)

// UpsertSales writes a batch of closed-sale records inside the given gorm
// transaction, replacing rows that share a listing URL. Used by the batch
// processor on the ingestion path.
func UpsertSales(tx *gorm.DB, sales []*models.SaleRecord) error {
	if len(sales) == 0 {
		return nil
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"street", "city", "state", "postal_code", "property_type",
			"close_price", "close_date", "building_area", "days_on_market",
		}),
	}).Create(&sales).Error
	if err != nil {
		return fmt.Errorf("failed to upsert sales: %w", err)
	}
	return nil
}
