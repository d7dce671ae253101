package syncer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	mcore "github.com/amirhossein-jamali/vending-sync/mocks/port/core"
)

// fixedClock is a TimeProvider frozen at a single instant
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
func (c fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c fixedClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// memoryTransactionStore mimics the unique constraint on the external transaction id
type memoryTransactionStore struct {
	mu   sync.Mutex
	rows map[string]entity.Transaction
	err  error
}

func newMemoryTransactionStore() *memoryTransactionStore {
	return &memoryTransactionStore{rows: make(map[string]entity.Transaction)}
}

func (s *memoryTransactionStore) InsertIgnoreConflicts(_ context.Context, transactions []entity.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}

	var inserted int64
	for _, tx := range transactions {
		if _, exists := s.rows[tx.ExternalTransactionID]; exists {
			continue
		}
		s.rows[tx.ExternalTransactionID] = tx
		inserted++
	}
	return inserted, nil
}

func (s *memoryTransactionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// newQuietLogger returns a logger mock that accepts any call
func newQuietLogger(t *testing.T) *mcore.MockLogger {
	logger := mcore.NewMockLogger(t)
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		logger.On(method, mock.Anything, mock.Anything).Return().Maybe()
	}
	return logger
}
