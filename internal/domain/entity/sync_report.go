package entity

import (
	"time"

	"github.com/google/uuid"
)

// SyncWindowDateLayout is the date format used for the telemetry window bounds
const SyncWindowDateLayout = "2006-01-02"

// SyncWindow is the inclusive date range requested from telemetry.
// It is computed once per run and shared by every machine in it.
type SyncWindow struct {
	Start time.Time
	End   time.Time
}

// StartDate returns the window start formatted for the telemetry API
func (w SyncWindow) StartDate() string {
	return w.Start.Format(SyncWindowDateLayout)
}

// EndDate returns the window end formatted for the telemetry API
func (w SyncWindow) EndDate() string {
	return w.End.Format(SyncWindowDateLayout)
}

// NewTrailingWindow returns the window of the given number of days ending on the day of now
func NewTrailingWindow(now time.Time, days int) SyncWindow {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return SyncWindow{
		Start: end.AddDate(0, 0, -days),
		End:   end,
	}
}

// SyncOutcome is the per-machine result of a sync run
type SyncOutcome struct {
	MachineID            uint64 `json:"machineId" yaml:"machineId"`
	MachineExternalID    string `json:"machineExternalId" yaml:"machineExternalId"`
	TransactionsIngested int    `json:"transactionsIngested" yaml:"transactionsIngested"`
	RecordsSkipped       int    `json:"recordsSkipped,omitempty" yaml:"recordsSkipped,omitempty"`
	Success              bool   `json:"success" yaml:"success"`
	Error                string `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMs           int64  `json:"durationMs" yaml:"durationMs"`
}

// SyncReport aggregates the outcomes of one sync run
type SyncReport struct {
	RunID             uuid.UUID     `json:"runId" yaml:"runId"`
	StartedAt         time.Time     `json:"startedAt" yaml:"startedAt"`
	FinishedAt        time.Time     `json:"finishedAt" yaml:"finishedAt"`
	WindowStart       string        `json:"windowStart" yaml:"windowStart"`
	WindowEnd         string        `json:"windowEnd" yaml:"windowEnd"`
	TotalMachines     int           `json:"totalMachines" yaml:"totalMachines"`
	TotalTransactions int           `json:"totalTransactions" yaml:"totalTransactions"`
	SkippedMachines   int           `json:"skippedMachines" yaml:"skippedMachines"`
	FailedMachines    int           `json:"failedMachines" yaml:"failedMachines"`
	Outcomes          []SyncOutcome `json:"outcomes" yaml:"outcomes"`
}

// NewSyncReport creates an empty report for a run over the given number of eligible machines
func NewSyncReport(runID uuid.UUID, startedAt time.Time, window SyncWindow, eligibleMachines int) *SyncReport {
	return &SyncReport{
		RunID:         runID,
		StartedAt:     startedAt,
		WindowStart:   window.StartDate(),
		WindowEnd:     window.EndDate(),
		TotalMachines: eligibleMachines,
		Outcomes:      []SyncOutcome{},
	}
}

// AddOutcome appends a machine outcome and updates the totals.
// Callers running machines concurrently must serialize calls.
func (r *SyncReport) AddOutcome(outcome SyncOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	if outcome.Success {
		r.TotalTransactions += outcome.TransactionsIngested
	} else {
		r.FailedMachines++
	}
}

// AddSkipped counts a machine that was skipped without an outcome
func (r *SyncReport) AddSkipped() {
	r.SkippedMachines++
}
