package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlatformSetting is a process-wide key/value toggle managed by admins.
type PlatformSetting struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Key       string    `gorm:"size:64;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *PlatformSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

const (
	SettingMaintenanceMode    = "maintenance_mode"
	SettingAllowRegistrations = "allow_registrations"
	SettingQuotesEnabled      = "quotes_enabled"
)

// DefaultSettings returns the settings seeded on a fresh install.
func DefaultSettings() []PlatformSetting {
	return []PlatformSetting{
		{Key: SettingMaintenanceMode, Value: "false"},
		{Key: SettingAllowRegistrations, Value: "true"},
		{Key: SettingQuotesEnabled, Value: "true"},
	}
}

// SettingEnabled reads a boolean setting. A missing or unreadable row
// falls back to def, so a half-seeded install keeps the safe behavior
// per key: registrations and quotes stay on, maintenance stays off.
func SettingEnabled(db *gorm.DB, key string, def bool) bool {
	var s PlatformSetting
	if err := db.Where("key = ?", key).First(&s).Error; err != nil {
		return def
	}
	return s.Value == "true"
}
