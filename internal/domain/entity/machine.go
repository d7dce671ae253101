package entity

import (
	"strings"

	"github.com/google/uuid"
)

// ApprovalStatus represents the review state of a listed machine
type ApprovalStatus string

// ApprovalStatus constants
const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Machine is a vending machine owned by an operator
type Machine struct {
	ID             uint64         // Internal identifier
	ExternalID     *string        // Identifier in the telemetry provider, nil when not linked
	OperatorID     uuid.UUID      // Owning operator
	Name           string         // Display name
	ApprovalStatus ApprovalStatus // Listing approval state
}

// IsSyncEligible reports whether the machine should be pulled from telemetry.
// Only approved machines linked to a telemetry identifier qualify.
func (m *Machine) IsSyncEligible() bool {
	return m.ApprovalStatus == ApprovalApproved &&
		m.ExternalID != nil &&
		strings.TrimSpace(*m.ExternalID) != ""
}

// ExternalIDValue returns the telemetry identifier or an empty string
func (m *Machine) ExternalIDValue() string {
	if m.ExternalID == nil {
		return ""
	}
	return *m.ExternalID
}
