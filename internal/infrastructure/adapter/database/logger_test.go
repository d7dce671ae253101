package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	mcore "github.com/amirhossein-jamali/vending-sync/mocks/port/core"
)

type stubClock struct {
	elapsed time.Duration
}

func (c stubClock) Now() time.Time { return time.Time{} }
func (c stubClock) Since(time.Time) time.Duration { return c.elapsed }
func (c stubClock) WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}

func traceSQL() (string, int64) {
	return `INSERT INTO "transactions" ("machine_id") VALUES (1)`, 1
}

func TestDatabaseLogger_Trace(t *testing.T) {
	t.Run("SQL error is logged at error level", func(t *testing.T) {
		// Arrange
		coreLogger := mcore.NewMockLogger(t)
		coreLogger.On("Error", "SQL error", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["table"] == "transactions" && fields["type"] == "INSERT" && fields["error"] == "boom"
		})).Once()
		dbLogger := NewDatabaseLogger(coreLogger, stubClock{elapsed: time.Millisecond}, "info")

		// Act
		dbLogger.Trace(context.Background(), time.Time{}, traceSQL, errors.New("boom"))
	})

	t.Run("Record not found is not an error", func(t *testing.T) {
		// Arrange
		coreLogger := mcore.NewMockLogger(t)
		dbLogger := NewDatabaseLogger(coreLogger, stubClock{elapsed: time.Millisecond}, "info")

		// Act
		dbLogger.Trace(context.Background(), time.Time{}, traceSQL, gorm.ErrRecordNotFound)
	})

	t.Run("Slow query is logged as warning", func(t *testing.T) {
		// Arrange
		coreLogger := mcore.NewMockLogger(t)
		coreLogger.On("Warn", "Slow SQL query", mock.Anything).Once()
		dbLogger := NewDatabaseLogger(coreLogger, stubClock{elapsed: time.Second}, "warn")

		// Act
		dbLogger.Trace(context.Background(), time.Time{}, traceSQL, nil)
	})

	t.Run("Debug level traces every statement", func(t *testing.T) {
		// Arrange
		coreLogger := mcore.NewMockLogger(t)
		coreLogger.On("Debug", "SQL query", mock.Anything).Once()
		dbLogger := NewDatabaseLogger(coreLogger, stubClock{elapsed: time.Millisecond}, "debug")

		// Act
		dbLogger.Trace(context.Background(), time.Time{}, traceSQL, nil)
	})

	t.Run("Silent mode logs nothing", func(t *testing.T) {
		// Arrange
		coreLogger := mcore.NewMockLogger(t)
		dbLogger := NewDatabaseLogger(coreLogger, stubClock{}, "info").LogMode(logger.Silent)

		// Act
		dbLogger.Trace(context.Background(), time.Time{}, traceSQL, errors.New("boom"))
	})
}

func TestExtractTableName(t *testing.T) {
	testCases := []struct {
		sql      string
		expected string
	}{
		{`SELECT * FROM "machines" WHERE id = 1`, "machines"},
		{`INSERT INTO "transactions" ("id") VALUES (1)`, "transactions"},
		{`UPDATE pricing_settings SET token = 1`, "pricing_settings"},
		{`CREATE INDEX foo ON bar (baz)`, ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, extractTableName(tc.sql), tc.sql)
	}
}
