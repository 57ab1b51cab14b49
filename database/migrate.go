package database

import (
	"fmt"

	"github.com/RushabhMehta2005/stores-api/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the stores, items and users tables. Stores go
// first so the items foreign key has a target.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Store{},
		&models.Item{},
		&models.User{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
