package syncer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	mpers "github.com/amirhossein-jamali/vending-sync/mocks/port/persistence"
)

func TestTokenResolverResolve(t *testing.T) {
	ctx := context.Background()
	operatorID := uuid.New()

	tests := []struct {
		name          string
		setupMocks    func(repo *mpers.MockIntegrationTokenRepository)
		expectedToken string
		expectedFound bool
		expectError   bool
	}{
		{
			name: "Token configured",
			setupMocks: func(repo *mpers.MockIntegrationTokenRepository) {
				repo.On("GetByOperator", mock.Anything, operatorID).
					Return(&entity.IntegrationToken{OperatorID: operatorID, Token: "secret"}, true, nil)
			},
			expectedToken: "secret",
			expectedFound: true,
		},
		{
			name: "No token is not an error",
			setupMocks: func(repo *mpers.MockIntegrationTokenRepository) {
				repo.On("GetByOperator", mock.Anything, operatorID).Return(nil, false, nil)
			},
		},
		{
			name: "Blank stored token counts as absent",
			setupMocks: func(repo *mpers.MockIntegrationTokenRepository) {
				repo.On("GetByOperator", mock.Anything, operatorID).
					Return(&entity.IntegrationToken{OperatorID: operatorID}, true, nil)
			},
		},
		{
			name: "Store failure is reported",
			setupMocks: func(repo *mpers.MockIntegrationTokenRepository) {
				repo.On("GetByOperator", mock.Anything, operatorID).Return(nil, false, errs.ErrDatabaseConnection)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := mpers.NewMockIntegrationTokenRepository(t)
			tt.setupMocks(repo)
			resolver := NewTokenResolver(repo, newQuietLogger(t))

			// Act
			token, found, err := resolver.Resolve(ctx, operatorID)

			// Assert
			if tt.expectError {
				assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedToken, token)
			assert.Equal(t, tt.expectedFound, found)
		})
	}
}
