package usecase

import (
	"context"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

// SyncUseCase runs telemetry synchronization
type SyncUseCase interface {
	// RunSync synchronizes every eligible machine and returns the aggregate report.
	// Per-machine failures are reported in the outcomes, never as an error.
	//
	// Possible errors:
	// - ErrSyncInProgress: If another run is still active
	// - ErrDatabaseConnection: If the eligible machine set cannot be loaded
	RunSync(ctx context.Context) (*entity.SyncReport, error)
}
