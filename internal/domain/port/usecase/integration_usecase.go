package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

// IntegrationUseCase manages operator telemetry credentials
type IntegrationUseCase interface {
	// SaveToken stores the operator's token, replacing any previous one
	//
	// Possible errors:
	// - ErrInvalidOperatorID: If the operator ID is nil
	// - ErrEmptyToken: If the token is blank
	// - ErrDatabaseConnection: If the store is unreachable
	SaveToken(ctx context.Context, operatorID uuid.UUID, token string) (*entity.IntegrationToken, error)
}
