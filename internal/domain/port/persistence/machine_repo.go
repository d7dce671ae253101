package persistence

import (
	"context"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

// MachineRepository provides read access to the machine directory
type MachineRepository interface {
	// ListSyncEligible returns approved machines that carry a telemetry identifier
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListSyncEligible(ctx context.Context) ([]entity.Machine, error)
}
