package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssetClass groups holdings for allocation charts. Global, admin-managed.
// Inactive classes stay on existing transactions but cannot be chosen for
// new ones.
type AssetClass struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:200" json:"description"`
	Color       string    `gorm:"size:7;not null;default:#6366f1" json:"color"` // hex RGB
	IsActive    bool      `gorm:"index;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *AssetClass) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// DefaultAssetClasses returns the classes seeded on a fresh install.
func DefaultAssetClasses() []AssetClass {
	return []AssetClass{
		{Name: "Ações", Description: "Ações listadas na B3", Color: "#6366f1", IsActive: true},
		{Name: "FIIs", Description: "Fundos imobiliários", Color: "#10b981", IsActive: true},
		{Name: "Cripto", Description: "Criptomoedas", Color: "#f59e0b", IsActive: true},
		{Name: "Renda Fixa", Description: "Tesouro, CDB, LCI/LCA", Color: "#3b82f6", IsActive: true},
		{Name: "Internacional", Description: "Ativos no exterior", Color: "#8b5cf6", IsActive: true},
	}
}
