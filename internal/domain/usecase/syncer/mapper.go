package syncer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
)

// timestampLayouts are tried in order; zone-less values are read as UTC
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
}

// externalRecord is a telemetry transaction using the provider's field names
type externalRecord struct {
	TransactionID     flexibleString      `json:"transaction_id"`
	AuthorizationTime *string             `json:"authorization_time"`
	SettlementTime    *string             `json:"settlement_time"`
	AuthorizedAmount  decimal.NullDecimal `json:"authorized_amount"`
	SettledAmount     decimal.NullDecimal `json:"settled_amount"`
	PaymentMethod     string              `json:"payment_method"`
	ProductName       string              `json:"product_name"`
}

// flexibleString accepts both JSON strings and numbers
type flexibleString string

// UnmarshalJSON implements json.Unmarshaler
func (s *flexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexibleString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = flexibleString(num.String())
	return nil
}

// Mapper converts telemetry records into transactions
type Mapper struct{}

// NewMapper creates a new transaction mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts one raw telemetry record for the given machine.
// The raw record is kept byte for byte as the transaction payload and the
// status is derived from the settled amount.
func (m *Mapper) Map(raw json.RawMessage, machineID uint64) (entity.Transaction, error) {
	var record externalRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return entity.Transaction{}, fmt.Errorf("%w: %v", errs.ErrInvalidExternalTransaction, err)
	}

	externalID := strings.TrimSpace(string(record.TransactionID))
	if externalID == "" {
		return entity.Transaction{}, errs.ErrMissingExternalTransactionID
	}

	authorizedAt, err := parseTimestamp(record.AuthorizationTime)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("%w: transaction %s authorization_time: %v",
			errs.ErrInvalidExternalTransaction, externalID, err)
	}
	settledAt, err := parseTimestamp(record.SettlementTime)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("%w: transaction %s settlement_time: %v",
			errs.ErrInvalidExternalTransaction, externalID, err)
	}

	payload := make(json.RawMessage, len(raw))
	copy(payload, raw)

	settled := record.SettledAmount.Decimal
	return entity.Transaction{
		ExternalTransactionID: externalID,
		MachineID:             machineID,
		RawPayload:            payload,
		AuthorizedAt:          authorizedAt,
		SettledAt:             settledAt,
		AuthorizedAmount:      record.AuthorizedAmount.Decimal,
		SettledAmount:         settled,
		PaymentMethod:         record.PaymentMethod,
		ProductName:           record.ProductName,
		Status:                entity.DeriveStatus(settled),
	}, nil
}

// MapAll converts every record, collecting the records that could not be mapped
func (m *Mapper) MapAll(records []json.RawMessage, machineID uint64) ([]entity.Transaction, []error) {
	transactions := make([]entity.Transaction, 0, len(records))
	var rejected []error

	for i, raw := range records {
		tx, err := m.Map(raw, machineID)
		if err != nil {
			rejected = append(rejected, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, rejected
}

func parseTimestamp(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized timestamp %q", trimmed)
}
