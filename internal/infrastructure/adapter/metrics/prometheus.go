package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns every collector exported by the service
type Registry struct {
	registry *prometheus.Registry

	syncRuns            prometheus.Counter
	syncRunDuration     prometheus.Histogram
	syncRunMachines     prometheus.Gauge
	syncRunTransactions prometheus.Gauge
	machineSyncs        *prometheus.CounterVec
	machineSyncDuration prometheus.Histogram
	transactionsSynced  prometheus.Counter
	skippedMachines     prometheus.Counter
	skippedRecords      prometheus.Counter

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	priceQuotes *prometheus.CounterVec

	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbIdle            prometheus.Gauge
	dbWaitCount       prometheus.Gauge
}

// NewRegistry creates a registry with all collectors under namespace
func NewRegistry(namespace string) *Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Registry{
		registry: registry,

		syncRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Total number of completed sync runs.",
		}),
		syncRunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_run_duration_seconds",
			Help:      "Wall-clock duration of sync runs.",
			Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}),
		syncRunMachines: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sync_last_run_machines",
			Help:      "Eligible machines in the most recent sync run.",
		}),
		syncRunTransactions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sync_last_run_transactions",
			Help:      "Transactions attempted in the most recent sync run.",
		}),
		machineSyncs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "machine_syncs_total",
			Help:      "Machine syncs, labelled by result.",
		}, []string{"result"}),
		machineSyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "machine_sync_duration_seconds",
			Help:      "Duration of a single machine sync.",
			Buckets:   prometheus.DefBuckets,
		}),
		transactionsSynced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_synced_total",
			Help:      "Transactions submitted to the store by successful machine syncs.",
		}),
		skippedMachines: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "machines_skipped_total",
			Help:      "Machines skipped for lack of an integration token.",
		}),
		skippedRecords: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telemetry_records_skipped_total",
			Help:      "Telemetry records that could not be mapped.",
		}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, labelled by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		priceQuotes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_quotes_total",
			Help:      "Price derivations, labelled by result.",
		}, []string{"result"}),

		dbOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Open database connections.",
		}),
		dbInUse: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_in_use_connections",
			Help:      "Database connections currently in use.",
		}),
		dbIdle: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_idle_connections",
			Help:      "Idle database connections.",
		}),
		dbWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for.",
		}),
	}
}

// Handler exposes the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveRun records a finished sync run
func (r *Registry) ObserveRun(duration time.Duration, machines int, transactions int) {
	r.syncRuns.Inc()
	r.syncRunDuration.Observe(duration.Seconds())
	r.syncRunMachines.Set(float64(machines))
	r.syncRunTransactions.Set(float64(transactions))
}

// ObserveMachine records the result of one machine sync
func (r *Registry) ObserveMachine(success bool, transactions int, duration time.Duration) {
	result := "failed"
	if success {
		result = "succeeded"
		r.transactionsSynced.Add(float64(transactions))
	}
	r.machineSyncs.WithLabelValues(result).Inc()
	r.machineSyncDuration.Observe(duration.Seconds())
}

// IncSkippedMachine counts a machine without an integration token
func (r *Registry) IncSkippedMachine() {
	r.skippedMachines.Inc()
}

// AddSkippedRecords counts unmappable telemetry records
func (r *Registry) AddSkippedRecords(count int) {
	if count > 0 {
		r.skippedRecords.Add(float64(count))
	}
}

// ObserveHTTPRequest records one served HTTP request
func (r *Registry) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncPriceQuote counts a price derivation by result
func (r *Registry) IncPriceQuote(result string) {
	r.priceQuotes.WithLabelValues(result).Inc()
}

// ObservePoolStats publishes database connection pool statistics
func (r *Registry) ObservePoolStats(stats sql.DBStats) {
	r.dbOpenConnections.Set(float64(stats.OpenConnections))
	r.dbInUse.Set(float64(stats.InUse))
	r.dbIdle.Set(float64(stats.Idle))
	r.dbWaitCount.Set(float64(stats.WaitCount))
}
