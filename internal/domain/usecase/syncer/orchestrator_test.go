package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/telemetry"
	mcore "github.com/amirhossein-jamali/vending-sync/mocks/port/core"
	mpers "github.com/amirhossein-jamali/vending-sync/mocks/port/persistence"
	mtele "github.com/amirhossein-jamali/vending-sync/mocks/port/telemetry"
)

var syncNow = time.Date(2024, 3, 8, 14, 30, 0, 0, time.UTC)

// stubClient answers telemetry calls from a function and records every request
type stubClient struct {
	mu       sync.Mutex
	requests []telemetry.TransactionsRequest
	respond  func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error)
}

func (c *stubClient) FetchTransactions(_ context.Context, req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	return c.respond(req)
}

func (c *stubClient) Requests() []telemetry.TransactionsRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]telemetry.TransactionsRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

func machine(id uint64, operatorID uuid.UUID) entity.Machine {
	externalID := fmt.Sprintf("VM-%d", id)
	return entity.Machine{
		ID:             id,
		ExternalID:     &externalID,
		OperatorID:     operatorID,
		ApprovalStatus: entity.ApprovalApproved,
	}
}

func records(machineExternalID string, n int) []json.RawMessage {
	out := make([]json.RawMessage, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, json.RawMessage(fmt.Sprintf(
			`{"transaction_id":"%s-%d","settled_amount":"1.50","authorized_amount":"1.50","product_name":"Water"}`,
			machineExternalID, i)))
	}
	return out
}

type orchestratorFixture struct {
	machines *mpers.MockMachineRepository
	tokens   *mpers.MockIntegrationTokenRepository
	store    *memoryTransactionStore
	client   telemetry.Client
	metrics  *mcore.MockSyncMetrics
}

func (f orchestratorFixture) build(t *testing.T, opts Options) *Orchestrator {
	logger := newQuietLogger(t)
	var metrics coreport.SyncMetrics
	if f.metrics != nil {
		metrics = f.metrics
	}
	return NewOrchestrator(
		f.machines,
		NewTokenResolver(f.tokens, logger),
		f.client,
		NewMapper(),
		f.store,
		metrics,
		fixedClock{now: syncNow},
		logger,
		opts,
	)
}

func TestRunSyncEmptyEligibleSet(t *testing.T) {
	// Arrange
	machines := mpers.NewMockMachineRepository(t)
	machines.On("ListSyncEligible", mock.Anything).Return([]entity.Machine{}, nil)
	client := mtele.NewMockClient(t)
	fixture := orchestratorFixture{
		machines: machines,
		tokens:   mpers.NewMockIntegrationTokenRepository(t),
		store:    newMemoryTransactionStore(),
		client:   client,
	}

	// Act
	report, err := fixture.build(t, Options{}).RunSync(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalMachines)
	assert.Equal(t, 0, report.TotalTransactions)
	assert.Empty(t, report.Outcomes)
	client.AssertNotCalled(t, "FetchTransactions", mock.Anything, mock.Anything)
}

func TestRunSyncIsolatesMachineFailures(t *testing.T) {
	// Arrange
	operatorID := uuid.New()
	var eligible []entity.Machine
	for id := uint64(1); id <= 5; id++ {
		eligible = append(eligible, machine(id, operatorID))
	}

	machines := mpers.NewMockMachineRepository(t)
	machines.On("ListSyncEligible", mock.Anything).Return(eligible, nil)
	tokens := mpers.NewMockIntegrationTokenRepository(t)
	tokens.On("GetByOperator", mock.Anything, operatorID).
		Return(&entity.IntegrationToken{OperatorID: operatorID, Token: "tkn"}, true, nil)

	client := &stubClient{respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
		if req.MachineExternalID == "VM-3" {
			return nil, errs.NewTelemetryStatusError(req.MachineExternalID, 502, "bad gateway")
		}
		return &telemetry.TransactionsResponse{Records: records(req.MachineExternalID, 2)}, nil
	}}

	store := newMemoryTransactionStore()
	fixture := orchestratorFixture{machines: machines, tokens: tokens, store: store, client: client}

	// Act
	report, err := fixture.build(t, Options{Concurrency: 3}).RunSync(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, report.TotalMachines)
	assert.Equal(t, 8, report.TotalTransactions)
	assert.Equal(t, 1, report.FailedMachines)
	require.Len(t, report.Outcomes, 5)

	for _, outcome := range report.Outcomes {
		if outcome.MachineExternalID == "VM-3" {
			assert.False(t, outcome.Success)
			assert.Equal(t, 0, outcome.TransactionsIngested)
			assert.Contains(t, outcome.Error, "502")
			continue
		}
		assert.True(t, outcome.Success, outcome.MachineExternalID)
		assert.Equal(t, 2, outcome.TransactionsIngested)
		assert.Empty(t, outcome.Error)
	}
	assert.Equal(t, 8, store.Len())

	for _, req := range client.Requests() {
		assert.Equal(t, "tkn", req.Token)
	}
}

func TestRunSyncIsIdempotent(t *testing.T) {
	// Arrange
	operatorID := uuid.New()
	machines := mpers.NewMockMachineRepository(t)
	machines.On("ListSyncEligible", mock.Anything).Return([]entity.Machine{machine(1, operatorID), machine(2, operatorID)}, nil)
	tokens := mpers.NewMockIntegrationTokenRepository(t)
	tokens.On("GetByOperator", mock.Anything, operatorID).
		Return(&entity.IntegrationToken{OperatorID: operatorID, Token: "tkn"}, true, nil)
	client := &stubClient{respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
		return &telemetry.TransactionsResponse{Records: records(req.MachineExternalID, 3)}, nil
	}}
	store := newMemoryTransactionStore()
	orchestrator := orchestratorFixture{machines: machines, tokens: tokens, store: store, client: client}.build(t, Options{})

	// Act
	first, err := orchestrator.RunSync(context.Background())
	require.NoError(t, err)
	rowsAfterFirst := store.Len()
	second, err := orchestrator.RunSync(context.Background())
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 6, rowsAfterFirst)
	assert.Equal(t, rowsAfterFirst, store.Len())
	assert.Equal(t, first.TotalTransactions, second.TotalTransactions)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunSyncSkipsMachinesWithoutToken(t *testing.T) {
	// Arrange
	withToken := uuid.New()
	withoutToken := uuid.New()
	machines := mpers.NewMockMachineRepository(t)
	machines.On("ListSyncEligible", mock.Anything).Return([]entity.Machine{machine(1, withToken), machine(2, withoutToken)}, nil)
	tokens := mpers.NewMockIntegrationTokenRepository(t)
	tokens.On("GetByOperator", mock.Anything, withToken).
		Return(&entity.IntegrationToken{OperatorID: withToken, Token: "tkn"}, true, nil)
	tokens.On("GetByOperator", mock.Anything, withoutToken).Return(nil, false, nil)

	client := mtele.NewMockClient(t)
	client.On("FetchTransactions", mock.Anything, mock.MatchedBy(func(req telemetry.TransactionsRequest) bool {
		return req.MachineExternalID == "VM-1"
	})).Return(&telemetry.TransactionsResponse{Records: records("VM-1", 1)}, nil).Once()

	metrics := mcore.NewMockSyncMetrics(t)
	metrics.On("IncSkippedMachine").Return().Once()
	metrics.On("ObserveMachine", true, 1, mock.Anything).Return().Once()
	metrics.On("ObserveRun", mock.Anything, 2, 1).Return().Once()

	fixture := orchestratorFixture{
		machines: machines,
		tokens:   tokens,
		store:    newMemoryTransactionStore(),
		client:   client,
		metrics:  metrics,
	}

	// Act
	report, err := fixture.build(t, Options{}).RunSync(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalMachines)
	assert.Equal(t, 1, report.SkippedMachines)
	assert.Equal(t, 0, report.FailedMachines)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, "VM-1", report.Outcomes[0].MachineExternalID)
}

func TestRunSyncEdgeCases(t *testing.T) {
	operatorID := uuid.New()

	tests := []struct {
		name            string
		respond         func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error)
		storeErr        error
		expectSuccess   bool
		expectIngested  int
		expectSkipped   int
		expectErrorPart string
	}{
		{
			name: "Body that is not a list counts as zero transactions",
			respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
				return &telemetry.TransactionsResponse{NotAList: true}, nil
			},
			expectSuccess: true,
		},
		{
			name: "Empty list",
			respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
				return &telemetry.TransactionsResponse{Records: []json.RawMessage{}}, nil
			},
			expectSuccess: true,
		},
		{
			name: "Unmappable records are skipped",
			respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
				recs := append(records(req.MachineExternalID, 2), json.RawMessage(`{"settled_amount":1}`))
				return &telemetry.TransactionsResponse{Records: recs}, nil
			},
			expectSuccess:  true,
			expectIngested: 2,
			expectSkipped:  1,
		},
		{
			name: "Store failure fails the machine",
			respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
				return &telemetry.TransactionsResponse{Records: records(req.MachineExternalID, 2)}, nil
			},
			storeErr:        errs.ErrDatabaseConnection,
			expectErrorPart: "persist",
		},
		{
			name: "Network failure fails the machine",
			respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
				return nil, errs.NewTelemetryTransportError(req.MachineExternalID, errors.New("connection reset"))
			},
			expectErrorPart: "fetch",
		},
		{
			name: "Panic is contained to the machine",
			respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
				panic("unexpected nil body")
			},
			expectErrorPart: "panic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			machines := mpers.NewMockMachineRepository(t)
			machines.On("ListSyncEligible", mock.Anything).Return([]entity.Machine{machine(1, operatorID)}, nil)
			tokens := mpers.NewMockIntegrationTokenRepository(t)
			tokens.On("GetByOperator", mock.Anything, operatorID).
				Return(&entity.IntegrationToken{OperatorID: operatorID, Token: "tkn"}, true, nil)
			store := newMemoryTransactionStore()
			store.err = tt.storeErr
			fixture := orchestratorFixture{
				machines: machines,
				tokens:   tokens,
				store:    store,
				client:   &stubClient{respond: tt.respond},
			}

			// Act
			report, err := fixture.build(t, Options{}).RunSync(context.Background())

			// Assert
			require.NoError(t, err)
			require.Len(t, report.Outcomes, 1)
			outcome := report.Outcomes[0]
			assert.Equal(t, tt.expectSuccess, outcome.Success)
			assert.Equal(t, tt.expectIngested, outcome.TransactionsIngested)
			assert.Equal(t, tt.expectSkipped, outcome.RecordsSkipped)
			if tt.expectErrorPart != "" {
				assert.Contains(t, outcome.Error, tt.expectErrorPart)
				assert.Equal(t, 1, report.FailedMachines)
			}
		})
	}
}

func TestRunSyncSharesOneWindow(t *testing.T) {
	// Arrange
	operatorID := uuid.New()
	machines := mpers.NewMockMachineRepository(t)
	machines.On("ListSyncEligible", mock.Anything).
		Return([]entity.Machine{machine(1, operatorID), machine(2, operatorID), machine(3, operatorID)}, nil)
	tokens := mpers.NewMockIntegrationTokenRepository(t)
	tokens.On("GetByOperator", mock.Anything, operatorID).
		Return(&entity.IntegrationToken{OperatorID: operatorID, Token: "tkn"}, true, nil)
	client := &stubClient{respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
		return &telemetry.TransactionsResponse{}, nil
	}}
	fixture := orchestratorFixture{machines: machines, tokens: tokens, store: newMemoryTransactionStore(), client: client}

	// Act
	report, err := fixture.build(t, Options{}).RunSync(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", report.WindowStart)
	assert.Equal(t, "2024-03-08", report.WindowEnd)
	requests := client.Requests()
	require.Len(t, requests, 3)
	for _, req := range requests {
		assert.Equal(t, "2024-03-01", req.Window.StartDate())
		assert.Equal(t, "2024-03-08", req.Window.EndDate())
	}
}

func TestRunSyncFiltersIneligibleMachines(t *testing.T) {
	operatorID := uuid.New()
	pending := machine(2, operatorID)
	pending.ApprovalStatus = entity.ApprovalPending
	unlinked := machine(3, operatorID)
	unlinked.ExternalID = nil

	machines := mpers.NewMockMachineRepository(t)
	machines.On("ListSyncEligible", mock.Anything).Return([]entity.Machine{machine(1, operatorID), pending, unlinked}, nil)
	tokens := mpers.NewMockIntegrationTokenRepository(t)
	tokens.On("GetByOperator", mock.Anything, operatorID).
		Return(&entity.IntegrationToken{OperatorID: operatorID, Token: "tkn"}, true, nil)
	client := &stubClient{respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
		return &telemetry.TransactionsResponse{}, nil
	}}
	fixture := orchestratorFixture{machines: machines, tokens: tokens, store: newMemoryTransactionStore(), client: client}

	report, err := fixture.build(t, Options{}).RunSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalMachines)
	assert.Len(t, client.Requests(), 1)
}

func TestRunSyncMachineListFailure(t *testing.T) {
	machines := mpers.NewMockMachineRepository(t)
	machines.On("ListSyncEligible", mock.Anything).Return(nil, errs.ErrDatabaseConnection)
	fixture := orchestratorFixture{
		machines: machines,
		tokens:   mpers.NewMockIntegrationTokenRepository(t),
		store:    newMemoryTransactionStore(),
		client:   mtele.NewMockClient(t),
	}

	report, err := fixture.build(t, Options{}).RunSync(context.Background())

	assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	assert.Nil(t, report)
}

func TestRunSyncRejectsOverlappingRuns(t *testing.T) {
	// Arrange
	operatorID := uuid.New()
	machines := mpers.NewMockMachineRepository(t)
	machines.On("ListSyncEligible", mock.Anything).Return([]entity.Machine{machine(1, operatorID)}, nil)
	tokens := mpers.NewMockIntegrationTokenRepository(t)
	tokens.On("GetByOperator", mock.Anything, operatorID).
		Return(&entity.IntegrationToken{OperatorID: operatorID, Token: "tkn"}, true, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	client := &stubClient{respond: func(req telemetry.TransactionsRequest) (*telemetry.TransactionsResponse, error) {
		close(entered)
		<-release
		return &telemetry.TransactionsResponse{}, nil
	}}
	orchestrator := orchestratorFixture{machines: machines, tokens: tokens, store: newMemoryTransactionStore(), client: client}.
		build(t, Options{})

	done := make(chan error, 1)
	go func() {
		_, err := orchestrator.RunSync(context.Background())
		done <- err
	}()
	<-entered

	// Act
	_, err := orchestrator.RunSync(context.Background())
	close(release)

	// Assert
	assert.ErrorIs(t, err, errs.ErrSyncInProgress)
	assert.NoError(t, <-done)
}
