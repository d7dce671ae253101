package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
)

// IntegrationToken is the telemetry API credential of an operator.
// An operator holds at most one token; saving a new one replaces it.
type IntegrationToken struct {
	OperatorID uuid.UUID
	Token      string
	UpdatedAt  time.Time
}

// NewIntegrationToken creates a token for an operator with basic validation
func NewIntegrationToken(operatorID uuid.UUID, token string, now time.Time) (*IntegrationToken, error) {
	if operatorID == uuid.Nil {
		return nil, errs.ErrInvalidOperatorID
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errs.ErrEmptyToken
	}

	return &IntegrationToken{
		OperatorID: operatorID,
		Token:      token,
		UpdatedAt:  now,
	}, nil
}
