package database

import (
	"fmt"

	"portfolio-tracker/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.AssetClass{},
		&models.Transaction{},
		&models.PlatformSetting{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedDefaults inserts the platform settings and asset classes a fresh
// install needs. Existing rows are left untouched.
func SeedDefaults(db *gorm.DB) error {
	for _, s := range models.DefaultSettings() {
		var count int64
		if err := db.Model(&models.PlatformSetting{}).
			Where("key = ?", s.Key).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check setting %s: %w", s.Key, err)
		}
		if count == 0 {
			if err := db.Create(&s).Error; err != nil {
				return fmt.Errorf("seed setting %s: %w", s.Key, err)
			}
		}
	}

	var classes int64
	if err := db.Model(&models.AssetClass{}).Count(&classes).Error; err != nil {
		return fmt.Errorf("count asset classes: %w", err)
	}
	if classes == 0 {
		for _, ac := range models.DefaultAssetClasses() {
			if err := db.Create(&ac).Error; err != nil {
				return fmt.Errorf("seed asset class %s: %w", ac.Name, err)
			}
		}
	}
	return nil
}
