package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/model"
)

// IntegrationTokenRepository implements IntegrationTokenRepository interface using GORM
type IntegrationTokenRepository struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	errorMapper  *database.ErrorMapper
}

// NewIntegrationTokenRepository creates a new IntegrationTokenRepository instance
func NewIntegrationTokenRepository(
	db *gorm.DB,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	errorMapper *database.ErrorMapper,
) *IntegrationTokenRepository {
	return &IntegrationTokenRepository{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		errorMapper:  errorMapper,
	}
}

// GetByOperator returns the operator's token, or found=false when none is stored
func (r *IntegrationTokenRepository) GetByOperator(ctx context.Context, operatorID uuid.UUID) (*entity.IntegrationToken, bool, error) {
	var tokenModel model.IntegrationToken
	result := r.db.WithContext(ctx).
		Where("operator_id = ?", operatorID).
		Take(&tokenModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		r.logger.Error("Failed to load integration token", map[string]any{
			"operator_id": operatorID.String(),
			"error":       result.Error.Error(),
		})
		return nil, false, r.errorMapper.MapError(result.Error, fmt.Sprintf("get integration token of operator %s", operatorID), nil)
	}

	return &entity.IntegrationToken{
		OperatorID: tokenModel.OperatorID,
		Token:      tokenModel.Token,
		UpdatedAt:  tokenModel.UpdatedAt,
	}, true, nil
}

// Upsert stores the token, replacing the operator's previous one
func (r *IntegrationTokenRepository) Upsert(ctx context.Context, token *entity.IntegrationToken) error {
	now := r.timeProvider.Now()
	tokenModel := model.IntegrationToken{
		OperatorID: token.OperatorID,
		Token:      token.Token,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "operator_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
		}).
		Create(&tokenModel)

	if result.Error != nil {
		r.logger.Error("Failed to store integration token", map[string]any{
			"operator_id": token.OperatorID.String(),
			"error":       result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "upsert integration token", nil)
	}

	token.UpdatedAt = now
	r.logger.Info("Integration token stored", map[string]any{
		"operator_id": token.OperatorID.String(),
	})
	return nil
}
