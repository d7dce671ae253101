package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

// IntegrationTokenRepository provides access to operator telemetry credentials
type IntegrationTokenRepository interface {
	// GetByOperator returns the operator's token.
	// A missing token is reported with found=false and a nil error.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	GetByOperator(ctx context.Context, operatorID uuid.UUID) (token *entity.IntegrationToken, found bool, err error)

	// Upsert stores the token, replacing any existing token of the operator
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Upsert(ctx context.Context, token *entity.IntegrationToken) error
}
