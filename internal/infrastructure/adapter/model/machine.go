package model

import (
	"time"

	"github.com/google/uuid"
)

// Machine represents the database model for vending machines
type Machine struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	ExternalID     *string   `gorm:"size:255;index"`
	OperatorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"size:255"`
	ApprovalStatus string    `gorm:"not null;size:20;default:pending;index"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for Machine
func (Machine) TableName() string {
	return "machines"
}
