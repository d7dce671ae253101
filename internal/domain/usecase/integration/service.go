package integration

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/persistence"
)

// Service implements the IntegrationUseCase interface
type Service struct {
	tokenRepo    persistence.IntegrationTokenRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewIntegrationService creates a new integration service
func NewIntegrationService(
	tokenRepo persistence.IntegrationTokenRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		tokenRepo:    tokenRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// SaveToken validates and upserts the operator's integration token
func (s *Service) SaveToken(ctx context.Context, operatorID uuid.UUID, token string) (*entity.IntegrationToken, error) {
	integration, err := entity.NewIntegrationToken(operatorID, token, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Upsert(ctx, integration); err != nil {
		s.logger.Error("Failed to save integration token", map[string]any{
			"operator_id": operatorID.String(),
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("saving integration token for operator %s: %w", operatorID, err)
	}

	// The token value itself is never logged
	s.logger.Info("Integration token saved", map[string]any{
		"operator_id": operatorID.String(),
	})
	return integration, nil
}
