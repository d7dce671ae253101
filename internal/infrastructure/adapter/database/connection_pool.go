package database

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
)

// PoolStatsObserver receives connection pool statistics on every collection
type PoolStatsObserver interface {
	ObservePoolStats(stats sql.DBStats)
}

// ConnectionPoolMonitor periodically samples the database connection pool
type ConnectionPoolMonitor struct {
	statsFn   func() (sql.DBStats, error)
	observer  PoolStatsObserver
	logger    coreport.Logger
	lastStats *sql.DBStats
	mutex     sync.RWMutex
	stopChan  chan struct{}
	stopOnce  sync.Once
}

// NewConnectionPoolMonitor creates a monitor reading stats from statsFn.
// observer may be nil.
func NewConnectionPoolMonitor(statsFn func() (sql.DBStats, error), observer PoolStatsObserver, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		statsFn:  statsFn,
		observer: observer,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start collects once and then keeps collecting every interval until Stop is called
func (m *ConnectionPoolMonitor) Start(interval time.Duration) error {
	if err := m.collect(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.collect(); err != nil {
					m.logger.Error("Failed to collect connection pool metrics", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop stops the monitoring goroutine
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// Stats returns the most recently collected pool statistics
func (m *ConnectionPoolMonitor) Stats() sql.DBStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.lastStats == nil {
		return sql.DBStats{}
	}
	return *m.lastStats
}

func (m *ConnectionPoolMonitor) collect() error {
	stats, err := m.statsFn()
	if err != nil {
		return fmt.Errorf("failed to read connection pool stats: %w", err)
	}

	m.mutex.Lock()
	m.lastStats = &stats
	m.mutex.Unlock()

	if m.observer != nil {
		m.observer.ObservePoolStats(stats)
	}

	threshold := float64(stats.MaxOpenConnections) * 0.8
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}
	return nil
}
