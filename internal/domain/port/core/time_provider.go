package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain
type TimeProvider interface {
	// Now returns the current instant
	Now() time.Time
	// Since returns the time elapsed since t
	Since(t time.Time) time.Duration
	// WithTimeout derives a context that is cancelled after timeout
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
