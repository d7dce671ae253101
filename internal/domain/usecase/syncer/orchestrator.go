package syncer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/telemetry"
)

// Sync stages reported in MachineSyncError
const (
	StageToken   = "token"
	StageFetch   = "fetch"
	StagePersist = "persist"
	StagePanic   = "panic"
)

// Default orchestrator settings
const (
	DefaultConcurrency    = 4
	DefaultWindowDays     = 7
	DefaultRequestTimeout = 30 * time.Second
)

// Options tunes a sync run
type Options struct {
	// Concurrency is the number of machines synced at the same time
	Concurrency int
	// WindowDays is the length of the trailing window ending today
	WindowDays int
	// RequestTimeout bounds each telemetry call
	RequestTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.WindowDays <= 0 {
		o.WindowDays = DefaultWindowDays
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	return o
}

// Orchestrator pulls telemetry transactions for every eligible machine and
// stores them idempotently. One machine failing never affects another.
type Orchestrator struct {
	machines     persistence.MachineRepository
	tokens       *TokenResolver
	client       telemetry.Client
	mapper       *Mapper
	transactions persistence.TransactionRepository
	metrics      coreport.SyncMetrics
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	opts         Options

	running atomic.Bool
}

// NewOrchestrator creates a new sync orchestrator.
// A nil metrics recorder disables metrics.
func NewOrchestrator(
	machines persistence.MachineRepository,
	tokens *TokenResolver,
	client telemetry.Client,
	mapper *Mapper,
	transactions persistence.TransactionRepository,
	metrics coreport.SyncMetrics,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	opts Options,
) *Orchestrator {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Orchestrator{
		machines:     machines,
		tokens:       tokens,
		client:       client,
		mapper:       mapper,
		transactions: transactions,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
		opts:         opts.withDefaults(),
	}
}

// RunSync synchronizes all eligible machines over the trailing window.
// Only a failure to load the machine set or an overlapping run is returned
// as an error; per-machine failures are recorded in the report.
func (o *Orchestrator) RunSync(ctx context.Context) (*entity.SyncReport, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, errs.ErrSyncInProgress
	}
	defer o.running.Store(false)

	startedAt := o.timeProvider.Now()
	window := entity.NewTrailingWindow(startedAt, o.opts.WindowDays)

	listed, err := o.machines.ListSyncEligible(ctx)
	if err != nil {
		o.logger.Error("Failed to load sync-eligible machines", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("listing sync-eligible machines: %w", err)
	}

	eligible := make([]entity.Machine, 0, len(listed))
	for _, machine := range listed {
		if machine.IsSyncEligible() {
			eligible = append(eligible, machine)
		}
	}

	report := entity.NewSyncReport(uuid.New(), startedAt, window, len(eligible))
	o.logger.Info("Sync run started", map[string]any{
		"run_id":       report.RunID.String(),
		"machines":     len(eligible),
		"window_start": report.WindowStart,
		"window_end":   report.WindowEnd,
	})

	if len(eligible) > 0 {
		o.syncAll(ctx, eligible, window, report)
	}

	report.FinishedAt = o.timeProvider.Now()
	o.metrics.ObserveRun(report.FinishedAt.Sub(startedAt), report.TotalMachines, report.TotalTransactions)
	o.logger.Info("Sync run finished", map[string]any{
		"run_id":           report.RunID.String(),
		"machines":         report.TotalMachines,
		"transactions":     report.TotalTransactions,
		"skipped_machines": report.SkippedMachines,
		"failed_machines":  report.FailedMachines,
		"duration_ms":      report.FinishedAt.Sub(startedAt).Milliseconds(),
	})
	return report, nil
}

// syncAll fans machines out over a bounded worker pool.
// Workers never return errors so the group never cancels siblings.
func (o *Orchestrator) syncAll(ctx context.Context, machines []entity.Machine, window entity.SyncWindow, report *entity.SyncReport) {
	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(o.opts.Concurrency)

	for _, machine := range machines {
		machine := machine
		g.Go(func() error {
			outcome, attempted := o.syncMachineSafely(ctx, machine, window)

			mu.Lock()
			defer mu.Unlock()
			if !attempted {
				report.AddSkipped()
				return nil
			}
			report.AddOutcome(outcome)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(report.Outcomes, func(i, j int) bool {
		return report.Outcomes[i].MachineID < report.Outcomes[j].MachineID
	})
}

// syncMachineSafely turns a panic in one machine's sync into a failed outcome
func (o *Orchestrator) syncMachineSafely(ctx context.Context, machine entity.Machine, window entity.SyncWindow) (outcome entity.SyncOutcome, attempted bool) {
	defer func() {
		if r := recover(); r != nil {
			err := errs.NewMachineSyncError(machine.ID, machine.ExternalIDValue(), StagePanic, fmt.Errorf("%v", r))
			outcome = o.failed(entity.SyncOutcome{
				MachineID:         machine.ID,
				MachineExternalID: machine.ExternalIDValue(),
			}, err, o.timeProvider.Now())
			attempted = true
		}
	}()
	return o.syncMachine(ctx, machine, window)
}

// syncMachine runs token resolution, fetch, mapping and storage for one machine.
// attempted is false when the machine was skipped for lack of a token.
func (o *Orchestrator) syncMachine(ctx context.Context, machine entity.Machine, window entity.SyncWindow) (entity.SyncOutcome, bool) {
	started := o.timeProvider.Now()
	externalID := machine.ExternalIDValue()
	outcome := entity.SyncOutcome{
		MachineID:         machine.ID,
		MachineExternalID: externalID,
	}

	token, found, err := o.tokens.Resolve(ctx, machine.OperatorID)
	if err != nil {
		return o.failed(outcome, errs.NewMachineSyncError(machine.ID, externalID, StageToken, err), started), true
	}
	if !found {
		o.metrics.IncSkippedMachine()
		o.logger.Debug("Skipping machine without integration token", map[string]any{
			"machine_id":          machine.ID,
			"machine_external_id": externalID,
			"operator_id":         machine.OperatorID.String(),
		})
		return outcome, false
	}

	callCtx, cancel := o.timeProvider.WithTimeout(ctx, o.opts.RequestTimeout)
	resp, err := o.client.FetchTransactions(callCtx, telemetry.TransactionsRequest{
		MachineExternalID: externalID,
		Token:             token,
		Window:            window,
	})
	cancel()
	if err != nil {
		return o.failed(outcome, errs.NewMachineSyncError(machine.ID, externalID, StageFetch, err), started), true
	}

	if resp.NotAList {
		o.logger.Warn("Telemetry response is not a list, treating as empty", map[string]any{
			"machine_id":          machine.ID,
			"machine_external_id": externalID,
		})
		return o.succeeded(outcome, 0, started), true
	}

	transactions, rejected := o.mapper.MapAll(resp.Records, machine.ID)
	if len(rejected) > 0 {
		outcome.RecordsSkipped = len(rejected)
		o.metrics.AddSkippedRecords(len(rejected))
		for _, rejectErr := range rejected {
			o.logger.Warn("Skipping unmappable telemetry record", map[string]any{
				"machine_id":          machine.ID,
				"machine_external_id": externalID,
				"error":               rejectErr.Error(),
			})
		}
	}

	if len(transactions) > 0 {
		inserted, err := o.transactions.InsertIgnoreConflicts(ctx, transactions)
		if err != nil {
			return o.failed(outcome, errs.NewMachineSyncError(machine.ID, externalID, StagePersist, err), started), true
		}
		o.logger.Debug("Stored machine transactions", map[string]any{
			"machine_id":          machine.ID,
			"machine_external_id": externalID,
			"attempted":           len(transactions),
			"inserted":            inserted,
		})
	}

	return o.succeeded(outcome, len(transactions), started), true
}

func (o *Orchestrator) succeeded(outcome entity.SyncOutcome, attempted int, started time.Time) entity.SyncOutcome {
	elapsed := o.timeProvider.Since(started)
	outcome.Success = true
	outcome.TransactionsIngested = attempted
	outcome.DurationMs = elapsed.Milliseconds()
	o.metrics.ObserveMachine(true, attempted, elapsed)
	return outcome
}

func (o *Orchestrator) failed(outcome entity.SyncOutcome, err error, started time.Time) entity.SyncOutcome {
	elapsed := o.timeProvider.Since(started)
	outcome.Success = false
	outcome.TransactionsIngested = 0
	outcome.Error = err.Error()
	outcome.DurationMs = elapsed.Milliseconds()
	o.metrics.ObserveMachine(false, 0, elapsed)

	fields := map[string]any{"error": err.Error()}
	if lf, ok := err.(interface{ LogFields() map[string]any }); ok {
		fields = lf.LogFields()
	}
	o.logger.Warn("Machine sync failed", fields)
	return outcome
}

type noopMetrics struct{}

func (noopMetrics) ObserveRun(time.Duration, int, int) {}
func (noopMetrics) ObserveMachine(bool, int, time.Duration) {}
func (noopMetrics) IncSkippedMachine() {}
func (noopMetrics) AddSkippedRecords(int) {}
