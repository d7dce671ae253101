package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/database"
	applogger "github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/logger"
	adaptertime "github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/time"
)

// newMockDB opens gorm on top of sqlmock. Default transactions are skipped so
// that every expectation maps to exactly one statement.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func quietLogger() core.Logger {
	return applogger.NewNoopLogger()
}

func clock() core.TimeProvider {
	return adaptertime.NewRealTimeProvider()
}

func errorMapper() *database.ErrorMapper {
	return database.NewErrorMapper()
}

var fixedNow = time.Date(2024, 3, 8, 14, 30, 0, 0, time.UTC)
