package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the mapper cares about
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgNotNullViolation     = "23502"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgAdminShutdown        = "57P01"
	pgCannotConnectNow     = "57P03"
	pgTooManyConnections   = "53300"
)

// ErrorMapper translates driver and gorm errors into domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new error mapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error.
// notFound is returned, wrapped, when the query matched no rows.
func (m *ErrorMapper) MapError(err error, operation string, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFound == nil {
			notFound = errs.ErrNotFound
		}
		return fmt.Errorf("%w: %s", notFound, operation)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", operation, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgNotNullViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s: %s", errs.ErrConstraintViolation, operation, pgErr.Message)
		}
		if strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == pgAdminShutdown ||
			pgErr.Code == pgCannotConnectNow || pgErr.Code == pgTooManyConnections {
			return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, pgErr.Message)
		}
		return fmt.Errorf("%s: %w", operation, err)
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "duplicate key"),
		strings.Contains(errMsg, "violates foreign key constraint"),
		strings.Contains(errMsg, "violates not-null constraint"):
		return fmt.Errorf("%w: %s: %v", errs.ErrConstraintViolation, operation, err)
	case strings.Contains(errMsg, "connection refused"),
		strings.Contains(errMsg, "connection reset"),
		strings.Contains(errMsg, "broken pipe"),
		strings.Contains(errMsg, "no connection"),
		strings.Contains(errMsg, "bad connection"):
		return fmt.Errorf("%w: %s: %v", errs.ErrDatabaseConnection, operation, err)
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// IsTransient reports whether retrying the failed operation may succeed.
// Constraint violations are never transient.
func (m *ErrorMapper) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, errs.ErrDatabaseConnection) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgAdminShutdown, pgCannotConnectNow, pgTooManyConnections:
			return true
		}
		return strings.HasPrefix(pgErr.Code, "08")
	}

	errMsg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"deadlock",
		"serialization failure",
		"could not serialize access",
		"connection refused",
		"connection reset",
		"broken pipe",
		"bad connection",
		"i/o timeout",
		"too many connections",
	} {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
