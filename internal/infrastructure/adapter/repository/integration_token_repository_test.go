package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

const selectTokenSQL = `SELECT \* FROM "integration_tokens" WHERE operator_id = \$1 LIMIT \$2`

func TestIntegrationTokenRepository_GetByOperator(t *testing.T) {
	t.Run("Token found", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewIntegrationTokenRepository(db, quietLogger(), clock(), errorMapper())
		operatorID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "operator_id", "token", "created_at", "updated_at"}).
			AddRow(1, operatorID.String(), "secret-token", fixedNow, fixedNow)
		mock.ExpectQuery(selectTokenSQL).
			WithArgs(sqlmock.AnyArg(), 1).
			WillReturnRows(rows)

		// Act
		token, found, err := repo.GetByOperator(context.Background(), operatorID)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		require.NotNil(t, token)
		assert.Equal(t, "secret-token", token.Token)
		assert.Equal(t, operatorID, token.OperatorID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Token absent is not an error", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := NewIntegrationTokenRepository(db, quietLogger(), clock(), errorMapper())

		mock.ExpectQuery(selectTokenSQL).
			WithArgs(sqlmock.AnyArg(), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "operator_id", "token"}))

		// Act
		token, found, err := repo.GetByOperator(context.Background(), uuid.New())

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, token)
	})
}

func TestIntegrationTokenRepository_Upsert(t *testing.T) {
	// Arrange
	db, mock := newMockDB(t)
	repo := NewIntegrationTokenRepository(db, quietLogger(), clock(), errorMapper())
	token, err := entity.NewIntegrationToken(uuid.New(), "  rotated-token  ", fixedNow)
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO "integration_tokens" (.+) ON CONFLICT \("operator_id"\) DO UPDATE SET "token"="excluded"."token","updated_at"="excluded"."updated_at" RETURNING "id"`).
		WithArgs(sqlmock.AnyArg(), "rotated-token", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// Act
	err = repo.Upsert(context.Background(), token)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntegrationTokenRepository_UpsertStampsUpdatedAt(t *testing.T) {
	// Arrange
	db, mock := newMockDB(t)
	repo := NewIntegrationTokenRepository(db, quietLogger(), clock(), errorMapper())
	token := &entity.IntegrationToken{OperatorID: uuid.New(), Token: "fresh-token"}

	mock.ExpectQuery(`INSERT INTO "integration_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// Act
	err := repo.Upsert(context.Background(), token)

	// Assert
	require.NoError(t, err)
	assert.False(t, token.UpdatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), token.UpdatedAt, time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}
