package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
)

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	testCases := []struct {
		name     string
		err      error
		notFound error
		expected error
	}{
		{"Record not found uses caller sentinel", gorm.ErrRecordNotFound, errs.ErrPricingSettingsNotFound, errs.ErrPricingSettingsNotFound},
		{"Record not found defaults to generic", gorm.ErrRecordNotFound, nil, errs.ErrNotFound},
		{"Unique violation", &pgconn.PgError{Code: "23505"}, nil, errs.ErrConstraintViolation},
		{"Foreign key violation", &pgconn.PgError{Code: "23503"}, nil, errs.ErrConstraintViolation},
		{"Connection exception class", &pgconn.PgError{Code: "08006"}, nil, errs.ErrDatabaseConnection},
		{"Too many connections", &pgconn.PgError{Code: "53300"}, nil, errs.ErrDatabaseConnection},
		{"Refused connection by message", errors.New("dial tcp 127.0.0.1:5432: connection refused"), nil, errs.ErrDatabaseConnection},
		{"Wrapped duplicate by message", fmt.Errorf("exec: %w", errors.New("ERROR: duplicate key value")), nil, errs.ErrConstraintViolation},
		{"Context deadline is kept", context.DeadlineExceeded, nil, context.DeadlineExceeded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			mapped := mapper.MapError(tc.err, "operation", tc.notFound)

			// Assert
			assert.ErrorIs(t, mapped, tc.expected)
			assert.Contains(t, mapped.Error(), "operation")
		})
	}

	t.Run("Nil stays nil", func(t *testing.T) {
		assert.NoError(t, mapper.MapError(nil, "operation", nil))
	})
}

func TestErrorMapper_IsTransient(t *testing.T) {
	mapper := NewErrorMapper()

	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"Deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"Admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"Unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"Duplicate key message", errors.New("duplicate key value violates unique constraint"), false},
		{"Connection reset message", errors.New("read: connection reset by peer"), true},
		{"Mapped connection error", fmt.Errorf("%w: ping", errs.ErrDatabaseConnection), true},
		{"Canceled context", context.Canceled, false},
		{"Unrelated error", errors.New("syntax error at or near"), false},
		{"Nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, mapper.IsTransient(tc.err))
		})
	}
}
