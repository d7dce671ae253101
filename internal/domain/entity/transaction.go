package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus defines possible status values for a vend transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is a single vend reported by the telemetry provider.
// Rows are written once and never updated afterwards.
type Transaction struct {
	ID                    uint64            // Internal identifier
	ExternalTransactionID string            // Provider transaction id, unique across the store
	MachineID             uint64            // Internal machine the vend happened on
	RawPayload            json.RawMessage   // Provider record exactly as received
	AuthorizedAt          *time.Time        // Card authorization time, if reported
	SettledAt             *time.Time        // Settlement time, if reported
	AuthorizedAmount      decimal.Decimal   // Amount authorized
	SettledAmount         decimal.Decimal   // Amount actually settled
	PaymentMethod         string            // Payment method reported by the provider
	ProductName           string            // Product vended
	Status                TransactionStatus // Derived from SettledAmount
	CreatedAt             time.Time         // When the row was stored
}

// DeriveStatus returns completed for a positive settled amount and failed otherwise
func DeriveStatus(settledAmount decimal.Decimal) TransactionStatus {
	if settledAmount.IsPositive() {
		return StatusCompleted
	}
	return StatusFailed
}
