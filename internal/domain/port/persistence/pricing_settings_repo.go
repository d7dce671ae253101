package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

// PricingSettingsRepository provides access to stored operator pricing settings
type PricingSettingsRepository interface {
	// GetByOperator returns the operator's settings; individual fields may be unset
	//
	// Possible errors:
	// - ErrPricingSettingsNotFound: If the operator has no settings row
	// - ErrDatabaseConnection: If database connection fails
	GetByOperator(ctx context.Context, operatorID uuid.UUID) (*entity.PricingSettings, error)
}
