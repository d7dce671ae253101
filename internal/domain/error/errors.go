package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidPricingPolicy   = 4001
	CodeInvalidBasePrice       = 4002
	CodeInvalidCommission      = 4003
	CodeInvalidOperatorID      = 4004
	CodeInvalidRequest         = 4005
	CodePricingSettingsMissing = 4040
	CodeIncompletePricing      = 4220

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeDatabaseConnection = 5001
	CodeTelemetryFailure   = 5020
	CodeSyncInProgress     = 5030
)

// Base error types
var (
	// ErrInvalidPricingPolicy is returned when a pricing policy fails validation
	ErrInvalidPricingPolicy = errors.New("invalid pricing policy")

	// ErrNegativePercentage is returned when a fee or tax percentage is below zero
	ErrNegativePercentage = errors.New("percentage cannot be negative")

	// ErrInvalidRoundingDirection is returned when the rounding direction is neither up nor down
	ErrInvalidRoundingDirection = errors.New("rounding direction must be up or down")

	// ErrInvalidRoundingIncrement is returned when the rounding increment is outside the allowed set
	ErrInvalidRoundingIncrement = errors.New("rounding increment must be one of 0.05, 0.10, 0.25, 0.50")

	// ErrIncompletePricingPolicy is returned when stored pricing settings miss a required field
	ErrIncompletePricingPolicy = errors.New("pricing policy is incomplete")

	// ErrPricingSettingsNotFound is returned when an operator has no pricing settings
	ErrPricingSettingsNotFound = errors.New("pricing settings not found")

	// ErrInvalidBasePrice is returned when the base price is not positive or malformed
	ErrInvalidBasePrice = errors.New("base price must be a positive decimal")

	// ErrInvalidCommission is returned when the commission percentage is negative or malformed
	ErrInvalidCommission = errors.New("commission percentage must be a non-negative decimal")

	// ErrDecimalOutOfRange is returned when a price or percentage input is too large or too precise
	ErrDecimalOutOfRange = errors.New("decimal input out of range")

	// ErrInvalidOperatorID is returned when an operator identifier cannot be parsed
	ErrInvalidOperatorID = errors.New("invalid operator ID")

	// ErrEmptyToken is returned when an integration token is blank
	ErrEmptyToken = errors.New("integration token cannot be empty")

	// ErrInvalidExternalTransaction is returned when a telemetry record cannot be mapped
	ErrInvalidExternalTransaction = errors.New("invalid external transaction record")

	// ErrMissingExternalTransactionID is returned when a telemetry record has no transaction id
	ErrMissingExternalTransactionID = errors.New("external transaction ID is missing")

	// ErrTelemetryRequestFailed is returned when the telemetry API answers with a non-success status
	ErrTelemetryRequestFailed = errors.New("telemetry request failed")

	// ErrTelemetryUnavailable is returned when the telemetry API cannot be reached
	ErrTelemetryUnavailable = errors.New("telemetry API unavailable")

	// ErrSyncInProgress is returned when a sync run is requested while another one is running
	ErrSyncInProgress = errors.New("sync run already in progress")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrIncompletePricingPolicy):
		return CodeIncompletePricing
	case errors.Is(err, ErrInvalidPricingPolicy),
		errors.Is(err, ErrNegativePercentage),
		errors.Is(err, ErrInvalidRoundingDirection),
		errors.Is(err, ErrInvalidRoundingIncrement):
		return CodeInvalidPricingPolicy
	case errors.Is(err, ErrInvalidBasePrice):
		return CodeInvalidBasePrice
	case errors.Is(err, ErrInvalidCommission):
		return CodeInvalidCommission
	case errors.Is(err, ErrInvalidOperatorID):
		return CodeInvalidOperatorID
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrEmptyToken):
		return CodeInvalidRequest
	case errors.Is(err, ErrPricingSettingsNotFound):
		return CodePricingSettingsMissing
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	case errors.Is(err, ErrTelemetryRequestFailed), errors.Is(err, ErrTelemetryUnavailable):
		return CodeTelemetryFailure
	case errors.Is(err, ErrSyncInProgress):
		return CodeSyncInProgress
	default:
		return CodeInternalServer
	}
}

// PricingPolicyError describes which policy field was rejected
type PricingPolicyError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface for PricingPolicyError
func (e *PricingPolicyError) Error() string {
	return fmt.Sprintf("invalid pricing policy field %s=%q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error
func (e *PricingPolicyError) Unwrap() error {
	return e.Err
}

// Is reports every policy field error as an ErrInvalidPricingPolicy as well
func (e *PricingPolicyError) Is(target error) bool {
	return target == ErrInvalidPricingPolicy
}

// LogFields returns a map of fields for structured logging
func (e *PricingPolicyError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "pricing_policy_error",
		"field":      e.Field,
		"value":      e.Value,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewPricingPolicyError creates a policy validation error for a single field
func NewPricingPolicyError(field, value string, err error) error {
	return &PricingPolicyError{Field: field, Value: value, Err: err}
}

// TelemetryError carries the details of a failed telemetry call
type TelemetryError struct {
	MachineExternalID string
	StatusCode        int
	Body              string
	Err               error
}

// Error implements the error interface for TelemetryError
func (e *TelemetryError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("telemetry call for machine %s failed: %v", e.MachineExternalID, e.Err)
	}
	return fmt.Sprintf("telemetry call for machine %s returned status %d: %s",
		e.MachineExternalID, e.StatusCode, e.Body)
}

// Unwrap returns the underlying error
func (e *TelemetryError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TelemetryError) LogFields() map[string]any {
	return map[string]any{
		"error_type":          "telemetry_error",
		"machine_external_id": e.MachineExternalID,
		"status_code":         e.StatusCode,
		"body":                e.Body,
		"error":               e.Err.Error(),
		"error_code":          ErrorCode(e.Err),
	}
}

// NewTelemetryStatusError creates an error for a non-success telemetry response
func NewTelemetryStatusError(machineExternalID string, statusCode int, body string) error {
	return &TelemetryError{
		MachineExternalID: machineExternalID,
		StatusCode:        statusCode,
		Body:              body,
		Err:               ErrTelemetryRequestFailed,
	}
}

// NewTelemetryTransportError creates an error for a telemetry call that never got a response
func NewTelemetryTransportError(machineExternalID string, cause error) error {
	return &TelemetryError{
		MachineExternalID: machineExternalID,
		Err:               fmt.Errorf("%w: %v", ErrTelemetryUnavailable, cause),
	}
}

// MachineSyncError records the stage at which a single machine's sync failed
type MachineSyncError struct {
	MachineID         uint64
	MachineExternalID string
	Stage             string
	Err               error
}

// Error implements the error interface for MachineSyncError
func (e *MachineSyncError) Error() string {
	return fmt.Sprintf("sync of machine %s failed during %s: %v", e.MachineExternalID, e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *MachineSyncError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *MachineSyncError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":          "machine_sync_error",
		"machine_id":          e.MachineID,
		"machine_external_id": e.MachineExternalID,
		"stage":               e.Stage,
		"error":               e.Err.Error(),
		"error_code":          ErrorCode(e.Err),
	}

	var telemetryErr *TelemetryError
	if errors.As(e.Err, &telemetryErr) && telemetryErr.StatusCode != 0 {
		fields["status_code"] = telemetryErr.StatusCode
	}
	return fields
}

// NewMachineSyncError creates a per-machine sync failure
func NewMachineSyncError(machineID uint64, machineExternalID, stage string, err error) error {
	return &MachineSyncError{
		MachineID:         machineID,
		MachineExternalID: machineExternalID,
		Stage:             stage,
		Err:               err,
	}
}

// IsPricingPolicyError checks if the error comes from pricing policy validation
func IsPricingPolicyError(err error) bool {
	return errors.Is(err, ErrInvalidPricingPolicy) ||
		errors.Is(err, ErrNegativePercentage) ||
		errors.Is(err, ErrInvalidRoundingDirection) ||
		errors.Is(err, ErrInvalidRoundingIncrement)
}

// IsTelemetryError checks if the error is related to the telemetry API
func IsTelemetryError(err error) bool {
	return errors.Is(err, ErrTelemetryRequestFailed) || errors.Is(err, ErrTelemetryUnavailable)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPricingSettingsNotFound)
}
