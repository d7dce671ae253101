package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface with the wall clock
type RealTimeProvider struct {
	location *time.Location
}

// NewRealTimeProvider creates a time provider reporting times in UTC
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{location: time.UTC}
}

// NewRealTimeProviderIn creates a time provider reporting times in the given location.
// The sync window's notion of "today" follows this location.
func NewRealTimeProviderIn(location *time.Location) core.TimeProvider {
	if location == nil {
		location = time.UTC
	}
	return &RealTimeProvider{location: location}
}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.location)
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// WithTimeout returns a context that will be canceled after the specified timeout
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
