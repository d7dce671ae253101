package dto

import (
	"time"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

// IntegrationTokenRequest carries a new telemetry credential for an operator
type IntegrationTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// IntegrationTokenResponse confirms a saved credential without echoing it
type IntegrationTokenResponse struct {
	OperatorID string    `json:"operatorId"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewIntegrationTokenResponse converts a saved token
func NewIntegrationTokenResponse(token *entity.IntegrationToken) IntegrationTokenResponse {
	return IntegrationTokenResponse{
		OperatorID: token.OperatorID.String(),
		UpdatedAt:  token.UpdatedAt,
	}
}
