package persistence

import (
	"context"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

// TransactionRepository defines the write path for synced vend transactions
type TransactionRepository interface {
	// InsertIgnoreConflicts stores transactions keyed on their external transaction id.
	// Rows whose id already exists are skipped; the first write wins and is never updated.
	// Returns the number of rows actually inserted.
	//
	// Possible errors:
	// - ErrConstraintViolation: If a row violates a constraint other than the id uniqueness
	// - ErrDatabaseConnection: If database connection fails
	InsertIgnoreConflicts(ctx context.Context, transactions []entity.Transaction) (int64, error)
}
