package repository

import (
	"context"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultInsertBatchSize = 500

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	errorMapper  *database.ErrorMapper
	retryConfig  database.RetryConfig
	batchSize    int
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(
	db *gorm.DB,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	errorMapper *database.ErrorMapper,
	batchSize int,
) *TransactionRepository {
	if batchSize <= 0 {
		batchSize = defaultInsertBatchSize
	}
	return &TransactionRepository{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		errorMapper:  errorMapper,
		retryConfig:  database.DefaultRetryConfig(),
		batchSize:    batchSize,
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(transaction *entity.Transaction) model.Transaction {
	createdAt := transaction.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.timeProvider.Now()
	}

	return model.Transaction{
		ExternalTransactionID: transaction.ExternalTransactionID,
		MachineID:             transaction.MachineID,
		RawPayload:            datatypes.JSON(transaction.RawPayload),
		AuthorizedAt:          transaction.AuthorizedAt,
		SettledAt:             transaction.SettledAt,
		AuthorizedAmount:      transaction.AuthorizedAmount,
		SettledAmount:         transaction.SettledAmount,
		PaymentMethod:         transaction.PaymentMethod,
		ProductName:           transaction.ProductName,
		Status:                string(transaction.Status),
		CreatedAt:             createdAt,
	}
}

// InsertIgnoreConflicts inserts the batch with ON CONFLICT (external_transaction_id) DO NOTHING.
// Existing rows are left untouched, which also makes the statement safe to retry.
func (r *TransactionRepository) InsertIgnoreConflicts(ctx context.Context, transactions []entity.Transaction) (int64, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	models := make([]model.Transaction, 0, len(transactions))
	for i := range transactions {
		models = append(models, r.entityToModel(&transactions[i]))
	}

	r.logger.Debug("Inserting transactions", map[string]any{
		"count":      len(models),
		"machine_id": models[0].MachineID,
	})

	var inserted int64
	err := database.RetryOnTransientError(ctx, r.retryConfig, func() error {
		result := r.db.WithContext(ctx).
			Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "external_transaction_id"}},
				DoNothing: true,
			}).
			CreateInBatches(&models, r.batchSize)
		if result.Error != nil {
			return result.Error
		}
		inserted = result.RowsAffected
		return nil
	}, r.errorMapper, r.logger)

	if err != nil {
		r.logger.Error("Failed to insert transactions", map[string]any{
			"count":      len(models),
			"machine_id": models[0].MachineID,
			"error":      err.Error(),
		})
		return 0, r.errorMapper.MapError(err, "insert transactions", nil)
	}

	r.logger.Debug("Transactions inserted", map[string]any{
		"attempted": len(models),
		"inserted":  inserted,
	})
	return inserted, nil
}
