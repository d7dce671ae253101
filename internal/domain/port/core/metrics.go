package core

import "time"

// SyncMetrics records the observable results of sync runs.
// Implementations must be safe for concurrent use; machine results are
// reported from the worker pool.
type SyncMetrics interface {
	// ObserveRun records a finished run with its duration
	ObserveRun(duration time.Duration, machines int, transactions int)
	// ObserveMachine records the result of a single machine sync
	ObserveMachine(success bool, transactions int, duration time.Duration)
	// IncSkippedMachine counts a machine skipped for lack of an integration token
	IncSkippedMachine()
	// AddSkippedRecords counts telemetry records dropped during mapping
	AddSkippedRecords(count int)
}
