package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TypeBuy      = "buy"
	TypeSell     = "sell"
	TypeDividend = "dividend"
)

// Transaction is a single buy, sell or dividend record owned by one user.
// Monetary fields are stored as decimals to keep cost-basis math exact.
// For buy/sell, TotalValue is always recomputed server-side as
// quantity*price+fees; for dividend it is the amount received and
// quantity/price/fees are zero.
type Transaction struct {
	ID              string          `gorm:"primaryKey;size:36"`
	UserID          string          `gorm:"size:36;index;not null"`
	Ticker          string          `gorm:"size:10;index;not null"`
	AssetName       string          `gorm:"size:100;not null"`
	AssetClassID    string          `gorm:"size:36;index;not null"`
	TransactionType string          `gorm:"size:16;index;not null"`
	TransactionDate time.Time       `gorm:"index;not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(24,8);not null"`
	PricePerUnit    decimal.Decimal `gorm:"type:decimal(24,8);not null"`
	Fees            decimal.Decimal `gorm:"type:decimal(24,8);not null"`
	TotalValue      decimal.Decimal `gorm:"type:decimal(24,8);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User       User       `gorm:"constraint:OnDelete:CASCADE"`
	AssetClass AssetClass `gorm:"constraint:OnDelete:RESTRICT"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
