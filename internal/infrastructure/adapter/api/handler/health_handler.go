package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/dto"
)

// Pinger checks a dependency
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	database Pinger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(database Pinger) *HealthHandler {
	return &HealthHandler{database: database}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.database.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "ok"})
}
