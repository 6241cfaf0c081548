package appointments

import (
	"context"
	"time"

	"github.com/compawny/scheduling-service/internal/domain"
)

// AppointmentRepository is the persistence interface of the service.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) error
	ListUpcomingByCaregiver(ctx context.Context, caregiverID int64, from time.Time) ([]*domain.Appointment, error)
	ListUpcomingByPet(ctx context.Context, petID int64, from time.Time) ([]*domain.Appointment, error)
	List(ctx context.Context, params domain.ListParams) ([]*domain.Appointment, int64, error)
}

// TransactionManager wraps an operation in one atomic unit of work.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current instant (seam for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface consumed by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
