package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerr "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/dto"
)

// IntegrationHandler handles operator integration credential requests
type IntegrationHandler struct {
	integrations usecase.IntegrationUseCase
	logger       coreport.Logger
}

// NewIntegrationHandler creates a new integration handler instance
func NewIntegrationHandler(integrations usecase.IntegrationUseCase, logger coreport.Logger) *IntegrationHandler {
	return &IntegrationHandler{
		integrations: integrations,
		logger:       logger,
	}
}

// SaveToken handles PUT /operators/:operatorId/integration-token
func (h *IntegrationHandler) SaveToken(c *gin.Context) {
	operatorID, err := uuid.Parse(c.Param("operatorId"))
	if err != nil {
		badRequest(c, domainerr.ErrInvalidOperatorID, "Invalid operator ID format")
		return
	}

	var req dto.IntegrationTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, domainerr.ErrInvalidRequest, "Invalid request format: token is required")
		return
	}

	token, err := h.integrations.SaveToken(c.Request.Context(), operatorID, req.Token)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewIntegrationTokenResponse(token))
}
