package syncer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/persistence"
)

// TokenResolver looks up the telemetry credential of an operator
type TokenResolver struct {
	repo   persistence.IntegrationTokenRepository
	logger coreport.Logger
}

// NewTokenResolver creates a new token resolver
func NewTokenResolver(repo persistence.IntegrationTokenRepository, logger coreport.Logger) *TokenResolver {
	return &TokenResolver{
		repo:   repo,
		logger: logger,
	}
}

// Resolve returns the operator's token.
// found is false when the operator never configured an integration; that is
// not an error and callers skip the operator's machines.
func (r *TokenResolver) Resolve(ctx context.Context, operatorID uuid.UUID) (token string, found bool, err error) {
	integration, found, err := r.repo.GetByOperator(ctx, operatorID)
	if err != nil {
		return "", false, fmt.Errorf("resolving integration token for operator %s: %w", operatorID, err)
	}
	if !found || integration == nil || integration.Token == "" {
		r.logger.Debug("No integration token configured", map[string]any{
			"operator_id": operatorID.String(),
		})
		return "", false, nil
	}
	return integration.Token, true, nil
}
