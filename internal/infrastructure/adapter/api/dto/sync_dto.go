package dto

import "github.com/amirhossein-jamali/vending-sync/internal/domain/entity"

// SyncRunResponse wraps the report of a finished sync run
type SyncRunResponse struct {
	Success bool               `json:"success" yaml:"success"`
	Report  *entity.SyncReport `json:"report" yaml:"report"`
}

// HealthResponse reports the service and dependency state
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
