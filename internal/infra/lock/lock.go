// Package lock serializes booking attempts per caregiver across
// service instances. The database's serializable transactions already
// guarantee correctness on a single database; the Redis lock is an
// optional layer that turns concurrent conflicting attempts into
// queueing instead of retries when several instances share one
// caregiver pool.
package lock

import (
	"context"
	"errors"
)

// ErrLockNotAcquired is returned when the caregiver lock is held
// elsewhere and could not be acquired.
var ErrLockNotAcquired = errors.New("caregiver lock not acquired")

// CaregiverLocker guards a critical section for one caregiver.
type CaregiverLocker interface {
	WithCaregiverLock(ctx context.Context, caregiverID int64, fn func(ctx context.Context) error) error
}

// NoopLocker runs the critical section without any distributed lock.
// Used when Redis is disabled.
type NoopLocker struct{}

// NewNoopLocker creates a pass-through locker.
func NewNoopLocker() *NoopLocker {
	return &NoopLocker{}
}

// WithCaregiverLock calls fn directly.
func (l *NoopLocker) WithCaregiverLock(ctx context.Context, _ int64, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
