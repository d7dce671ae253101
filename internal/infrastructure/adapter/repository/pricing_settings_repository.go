package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/model"
)

// PricingSettingsRepository implements PricingSettingsRepository interface using GORM
type PricingSettingsRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *database.ErrorMapper
}

// NewPricingSettingsRepository creates a new PricingSettingsRepository instance
func NewPricingSettingsRepository(db *gorm.DB, logger coreport.Logger, errorMapper *database.ErrorMapper) *PricingSettingsRepository {
	return &PricingSettingsRepository{
		db:          db,
		logger:      logger,
		errorMapper: errorMapper,
	}
}

// GetByOperator loads the operator's pricing settings; unset columns stay nil
func (r *PricingSettingsRepository) GetByOperator(ctx context.Context, operatorID uuid.UUID) (*entity.PricingSettings, error) {
	var settingsModel model.PricingSettings
	result := r.db.WithContext(ctx).
		Where("operator_id = ?", operatorID).
		Take(&settingsModel)

	if result.Error != nil {
		mapped := r.errorMapper.MapError(result.Error,
			fmt.Sprintf("operator %s", operatorID), errs.ErrPricingSettingsNotFound)
		if !errs.IsNotFoundError(mapped) {
			r.logger.Error("Failed to load pricing settings", map[string]any{
				"operator_id": operatorID.String(),
				"error":       result.Error.Error(),
			})
		}
		return nil, mapped
	}

	settings := &entity.PricingSettings{
		OperatorID:              settingsModel.OperatorID,
		ProcessingFeePercentage: nullDecimalPtr(settingsModel.ProcessingFeePercentage),
		SalesTaxPercentage:      nullDecimalPtr(settingsModel.SalesTaxPercentage),
		RoundingIncrement:       nullDecimalPtr(settingsModel.RoundingIncrement),
	}
	if settingsModel.RoundingDirection != nil {
		direction := entity.RoundingDirection(*settingsModel.RoundingDirection)
		settings.RoundingDirection = &direction
	}
	return settings, nil
}

func nullDecimalPtr(value decimal.NullDecimal) *decimal.Decimal {
	if !value.Valid {
		return nil
	}
	d := value.Decimal
	return &d
}
