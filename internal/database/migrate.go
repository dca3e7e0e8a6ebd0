package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

// Migrate creates or updates the tables for every persisted model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
