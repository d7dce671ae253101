package telemetry

import (
	"context"
	"encoding/json"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

// TransactionsRequest identifies one machine's transactions over a window
type TransactionsRequest struct {
	MachineExternalID string
	Token             string
	Window            entity.SyncWindow
}

// TransactionsResponse is the decoded body of a successful telemetry call
type TransactionsResponse struct {
	// Records holds each list element exactly as received
	Records []json.RawMessage
	// NotAList is set when the body was valid but not a JSON array
	NotAList bool
}

// Client fetches vend transactions from the telemetry provider
type Client interface {
	// FetchTransactions requests a machine's transactions for the window.
	//
	// Possible errors:
	// - ErrTelemetryRequestFailed: If the provider answers with a non-success status
	// - ErrTelemetryUnavailable: If the provider cannot be reached or the call times out
	FetchTransactions(ctx context.Context, req TransactionsRequest) (*TransactionsResponse, error)
}
