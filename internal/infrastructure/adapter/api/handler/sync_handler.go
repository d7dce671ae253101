package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/dto"
)

// SyncHandler handles manual sync triggers
type SyncHandler struct {
	syncer usecase.SyncUseCase
	logger coreport.Logger
}

// NewSyncHandler creates a new sync handler instance
func NewSyncHandler(syncer usecase.SyncUseCase, logger coreport.Logger) *SyncHandler {
	return &SyncHandler{
		syncer: syncer,
		logger: logger,
	}
}

// RunSync handles POST /sync/run.
// Machine failures are part of the report; the response is 200 as long as the run completed.
func (h *SyncHandler) RunSync(c *gin.Context) {
	report, err := h.syncer.RunSync(c.Request.Context())
	if err != nil {
		h.logger.Warn("Manual sync run rejected", map[string]any{
			"error": err.Error(),
		})
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SyncRunResponse{
		Success: report.FailedMachines == 0,
		Report:  report,
	})
}
