package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transaction represents the database model for synced vend transactions
type Transaction struct {
	ID                    uint64          `gorm:"primaryKey;autoIncrement"`
	ExternalTransactionID string          `gorm:"uniqueIndex;not null;size:255"`
	MachineID             uint64          `gorm:"not null;index"`
	RawPayload            datatypes.JSON  `gorm:"type:jsonb;not null"`
	AuthorizedAt          *time.Time      `gorm:"index"`
	SettledAt             *time.Time
	AuthorizedAmount      decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0"`
	SettledAmount         decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0"`
	PaymentMethod         string          `gorm:"size:50"`
	ProductName           string          `gorm:"size:255"`
	Status                string          `gorm:"not null;size:20"`
	CreatedAt             time.Time       `gorm:"not null"`

	Machine Machine `gorm:"foreignKey:MachineID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
