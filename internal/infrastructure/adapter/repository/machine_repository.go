package repository

import (
	"context"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// MachineRepository implements MachineRepository interface using GORM
type MachineRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *database.ErrorMapper
}

// NewMachineRepository creates a new MachineRepository instance
func NewMachineRepository(db *gorm.DB, logger coreport.Logger, errorMapper *database.ErrorMapper) *MachineRepository {
	return &MachineRepository{
		db:          db,
		logger:      logger,
		errorMapper: errorMapper,
	}
}

func (r *MachineRepository) modelToEntity(machineModel *model.Machine) entity.Machine {
	return entity.Machine{
		ID:             machineModel.ID,
		ExternalID:     machineModel.ExternalID,
		OperatorID:     machineModel.OperatorID,
		Name:           machineModel.Name,
		ApprovalStatus: entity.ApprovalStatus(machineModel.ApprovalStatus),
	}
}

// ListSyncEligible returns approved machines with a non-blank external id, ordered by id
func (r *MachineRepository) ListSyncEligible(ctx context.Context) ([]entity.Machine, error) {
	var machineModels []model.Machine
	result := r.db.WithContext(ctx).
		Where("approval_status = ?", string(entity.ApprovalApproved)).
		Where("external_id IS NOT NULL AND TRIM(external_id) <> ''").
		Order("id ASC").
		Find(&machineModels)

	if result.Error != nil {
		r.logger.Error("Failed to list sync-eligible machines", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, r.errorMapper.MapError(result.Error, "list sync-eligible machines", nil)
	}

	machines := make([]entity.Machine, 0, len(machineModels))
	for i := range machineModels {
		machines = append(machines, r.modelToEntity(&machineModels[i]))
	}
	return machines, nil
}
