package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/dto"
)

// statusFor maps a domain error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrIncompletePricingPolicy):
		return http.StatusUnprocessableEntity
	case domainerr.IsPricingPolicyError(err),
		errors.Is(err, domainerr.ErrInvalidBasePrice),
		errors.Is(err, domainerr.ErrInvalidCommission),
		errors.Is(err, domainerr.ErrInvalidOperatorID),
		errors.Is(err, domainerr.ErrInvalidRequest),
		errors.Is(err, domainerr.ErrEmptyToken):
		return http.StatusBadRequest
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrSyncInProgress):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrDatabaseConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with the standardized error body.
// Server errors never echo the underlying message.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

func badRequest(c *gin.Context, err error, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
