package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingSettings represents the database model for operator pricing settings.
// Every policy column is nullable; incomplete rows are rejected when a price is derived.
type PricingSettings struct {
	ID                      uint64              `gorm:"primaryKey;autoIncrement"`
	OperatorID              uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	ProcessingFeePercentage decimal.NullDecimal `gorm:"type:numeric(7,4)"`
	SalesTaxPercentage      decimal.NullDecimal `gorm:"type:numeric(7,4)"`
	RoundingDirection       *string             `gorm:"size:4"`
	RoundingIncrement       decimal.NullDecimal `gorm:"type:numeric(4,2)"`
	CreatedAt               time.Time           `gorm:"not null"`
	UpdatedAt               time.Time           `gorm:"not null"`
}

// TableName specifies the table name for PricingSettings
func (PricingSettings) TableName() string {
	return "pricing_settings"
}
