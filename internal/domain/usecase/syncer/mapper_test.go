package syncer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
)

func TestMapperMap(t *testing.T) {
	mapper := NewMapper()

	t.Run("Maps every named field", func(t *testing.T) {
		raw := json.RawMessage(`{"transaction_id":"TX-1","authorization_time":"2024-03-01T10:15:00Z",` +
			`"settlement_time":"2024-03-01 10:16:30","authorized_amount":"2.50","settled_amount":2.5,` +
			`"payment_method":"card","product_name":"Cola","extra":{"lane":4}}`)

		tx, err := mapper.Map(raw, 42)

		require.NoError(t, err)
		assert.Equal(t, "TX-1", tx.ExternalTransactionID)
		assert.Equal(t, uint64(42), tx.MachineID)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), tx.AuthorizedAt.UTC())
		assert.Equal(t, time.Date(2024, 3, 1, 10, 16, 30, 0, time.UTC), *tx.SettledAt)
		assert.True(t, decimal.RequireFromString("2.50").Equal(tx.AuthorizedAmount))
		assert.True(t, decimal.RequireFromString("2.5").Equal(tx.SettledAmount))
		assert.Equal(t, "card", tx.PaymentMethod)
		assert.Equal(t, "Cola", tx.ProductName)
		assert.Equal(t, entity.StatusCompleted, tx.Status)
		assert.Equal(t, string(raw), string(tx.RawPayload))
	})

	t.Run("Settled amount of zero is failed", func(t *testing.T) {
		tx, err := mapper.Map(json.RawMessage(`{"transaction_id":"TX-2","settled_amount":0}`), 1)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusFailed, tx.Status)
	})

	t.Run("Settled amount of one cent is completed", func(t *testing.T) {
		tx, err := mapper.Map(json.RawMessage(`{"transaction_id":"TX-3","settled_amount":"0.01"}`), 1)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, tx.Status)
	})

	t.Run("Missing settled amount is failed", func(t *testing.T) {
		tx, err := mapper.Map(json.RawMessage(`{"transaction_id":"TX-4","settled_amount":null}`), 1)

		require.NoError(t, err)
		assert.True(t, tx.SettledAmount.IsZero())
		assert.Equal(t, entity.StatusFailed, tx.Status)
	})

	t.Run("Numeric transaction id", func(t *testing.T) {
		tx, err := mapper.Map(json.RawMessage(`{"transaction_id":987654321012,"settled_amount":1}`), 1)

		require.NoError(t, err)
		assert.Equal(t, "987654321012", tx.ExternalTransactionID)
	})

	t.Run("Absent timestamps stay nil", func(t *testing.T) {
		tx, err := mapper.Map(json.RawMessage(`{"transaction_id":"TX-5","authorization_time":""}`), 1)

		require.NoError(t, err)
		assert.Nil(t, tx.AuthorizedAt)
		assert.Nil(t, tx.SettledAt)
	})

	t.Run("Missing transaction id", func(t *testing.T) {
		_, err := mapper.Map(json.RawMessage(`{"settled_amount":1}`), 1)

		assert.ErrorIs(t, err, errs.ErrMissingExternalTransactionID)
	})

	t.Run("Record is not an object", func(t *testing.T) {
		_, err := mapper.Map(json.RawMessage(`"TX-6"`), 1)

		assert.ErrorIs(t, err, errs.ErrInvalidExternalTransaction)
	})

	t.Run("Unparseable timestamp", func(t *testing.T) {
		_, err := mapper.Map(json.RawMessage(`{"transaction_id":"TX-7","settlement_time":"yesterday"}`), 1)

		assert.ErrorIs(t, err, errs.ErrInvalidExternalTransaction)
	})
}

func TestMapperMapAll(t *testing.T) {
	records := []json.RawMessage{
		json.RawMessage(`{"transaction_id":"A","settled_amount":1}`),
		json.RawMessage(`{"settled_amount":1}`),
		json.RawMessage(`{"transaction_id":"B","settled_amount":0}`),
	}

	transactions, rejected := NewMapper().MapAll(records, 9)

	require.Len(t, transactions, 2)
	assert.Equal(t, "A", transactions[0].ExternalTransactionID)
	assert.Equal(t, "B", transactions[1].ExternalTransactionID)
	require.Len(t, rejected, 1)
	assert.ErrorIs(t, rejected[0], errs.ErrMissingExternalTransactionID)
}
