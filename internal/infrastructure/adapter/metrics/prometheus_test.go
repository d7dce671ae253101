package metrics

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
)

var _ coreport.SyncMetrics = (*Registry)(nil)

func TestRegistry_SyncMetrics(t *testing.T) {
	// Arrange
	registry := NewRegistry("vs_test")

	// Act
	registry.ObserveMachine(true, 12, 300*time.Millisecond)
	registry.ObserveMachine(true, 3, 100*time.Millisecond)
	registry.ObserveMachine(false, 99, time.Second)
	registry.IncSkippedMachine()
	registry.AddSkippedRecords(2)
	registry.AddSkippedRecords(0)
	registry.ObserveRun(2*time.Second, 4, 15)

	// Assert
	assert.Equal(t, 2.0, testutil.ToFloat64(registry.machineSyncs.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.machineSyncs.WithLabelValues("failed")))
	assert.Equal(t, 15.0, testutil.ToFloat64(registry.transactionsSynced))
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.skippedMachines))
	assert.Equal(t, 2.0, testutil.ToFloat64(registry.skippedRecords))
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.syncRuns))
	assert.Equal(t, 4.0, testutil.ToFloat64(registry.syncRunMachines))
	assert.Equal(t, 15.0, testutil.ToFloat64(registry.syncRunTransactions))
}

func TestRegistry_HTTPAndPoolMetrics(t *testing.T) {
	// Arrange
	registry := NewRegistry("vs_test")

	// Act
	registry.ObserveHTTPRequest(http.MethodPost, "/api/v1/pricing/quote", http.StatusOK, 5*time.Millisecond)
	registry.ObserveHTTPRequest(http.MethodPost, "/api/v1/pricing/quote", http.StatusBadRequest, time.Millisecond)
	registry.IncPriceQuote("ok")
	registry.ObservePoolStats(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3, WaitCount: 7})

	// Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.httpRequests.WithLabelValues("POST", "/api/v1/pricing/quote", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.httpRequests.WithLabelValues("POST", "/api/v1/pricing/quote", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.priceQuotes.WithLabelValues("ok")))
	assert.Equal(t, 5.0, testutil.ToFloat64(registry.dbOpenConnections))
	assert.Equal(t, 2.0, testutil.ToFloat64(registry.dbInUse))
	assert.Equal(t, 7.0, testutil.ToFloat64(registry.dbWaitCount))
}

func TestRegistry_Handler(t *testing.T) {
	// Arrange
	registry := NewRegistry("vs_test")
	registry.IncSkippedMachine()
	server := httptest.NewServer(registry.Handler())
	defer server.Close()

	// Act
	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "vs_test_machines_skipped_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
