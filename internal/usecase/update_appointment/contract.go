package update_appointment

import (
	"context"
	"time"

	"github.com/compawny/scheduling-service/internal/domain"
	"github.com/compawny/scheduling-service/internal/integrations/caregiverservice"
)

// AppointmentRepository is the persistence interface of the use case.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
	GetActiveByCaregiver(ctx context.Context, caregiverID int64) ([]*domain.Appointment, error)
}

// CaregiverServiceClient resolves the caregiver's current hourly rate
// for price recomputation.
type CaregiverServiceClient interface {
	GetByID(ctx context.Context, id int64) (*caregiverservice.Caregiver, error)
}

// TransactionManager wraps the load, conflict re-scan and write in one
// serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CaregiverLocker optionally serializes booking attempts per caregiver
// across instances.
type CaregiverLocker interface {
	WithCaregiverLock(ctx context.Context, caregiverID int64, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current instant (seam for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface consumed by the use case.
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
