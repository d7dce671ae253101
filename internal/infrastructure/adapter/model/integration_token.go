package model

import (
	"time"

	"github.com/google/uuid"
)

// IntegrationToken represents the database model for operator telemetry credentials
type IntegrationToken struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	OperatorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Token      string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for IntegrationToken
func (IntegrationToken) TableName() string {
	return "integration_tokens"
}
