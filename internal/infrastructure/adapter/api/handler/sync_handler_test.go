package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/dto"
	musecase "github.com/amirhossein-jamali/vending-sync/mocks/port/usecase"
)

func syncRouter(syncer *musecase.MockSyncUseCase) *gin.Engine {
	router := gin.New()
	router.POST("/sync/run", NewSyncHandler(syncer, quietLogger).RunSync)
	return router
}

func TestSyncHandler_RunSync(t *testing.T) {
	t.Run("Partial failure still returns the report", func(t *testing.T) {
		// Arrange
		syncer := musecase.NewMockSyncUseCase(t)
		report := &entity.SyncReport{
			RunID:             uuid.New(),
			TotalMachines:     2,
			TotalTransactions: 5,
			FailedMachines:    1,
			Outcomes: []entity.SyncOutcome{
				{MachineID: 1, MachineExternalID: "VM-1", TransactionsIngested: 5, Success: true},
				{MachineID: 2, MachineExternalID: "VM-2", Success: false, Error: "status 502"},
			},
		}
		syncer.On("RunSync", mock.Anything).Return(report, nil).Once()

		// Act
		rec := perform(syncRouter(syncer), http.MethodPost, "/sync/run", nil)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.SyncRunResponse
		decode(t, rec, &resp)
		assert.False(t, resp.Success)
		assert.Equal(t, 2, resp.Report.TotalMachines)
		assert.Equal(t, 5, resp.Report.TotalTransactions)
		assert.Len(t, resp.Report.Outcomes, 2)
	})

	t.Run("Overlapping run is a conflict", func(t *testing.T) {
		// Arrange
		syncer := musecase.NewMockSyncUseCase(t)
		syncer.On("RunSync", mock.Anything).Return(nil, domainerr.ErrSyncInProgress).Once()

		// Act
		rec := perform(syncRouter(syncer), http.MethodPost, "/sync/run", nil)

		// Assert
		assert.Equal(t, http.StatusConflict, rec.Code)
		var resp dto.ErrorResponse
		decode(t, rec, &resp)
		assert.Equal(t, domainerr.CodeSyncInProgress, resp.Code)
	})

	t.Run("Unexpected error hides details", func(t *testing.T) {
		// Arrange
		syncer := musecase.NewMockSyncUseCase(t)
		syncer.On("RunSync", mock.Anything).Return(nil, errors.New("pq: secret detail")).Once()

		// Act
		rec := perform(syncRouter(syncer), http.MethodPost, "/sync/run", nil)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret detail")
	})
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedState  string
	}{
		{"Database reachable", nil, http.StatusOK, "ok"},
		{"Database down", domainerr.ErrDatabaseConnection, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			router := gin.New()
			router.GET("/health", NewHealthHandler(stubPinger{err: tc.pingErr}).Health)

			// Act
			rec := perform(router, http.MethodGet, "/health", nil)

			// Assert
			assert.Equal(t, tc.expectedStatus, rec.Code)
			var resp dto.HealthResponse
			decode(t, rec, &resp)
			assert.Equal(t, tc.expectedState, resp.Status)
		})
	}
}
