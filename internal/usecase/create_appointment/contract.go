package create_appointment

import (
	"context"
	"time"

	"github.com/compawny/scheduling-service/internal/domain"
	"github.com/compawny/scheduling-service/internal/integrations/caregiverservice"
	"github.com/compawny/scheduling-service/internal/integrations/petservice"
)

// AppointmentRepository is the persistence interface of the use case.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetActiveByCaregiver(ctx context.Context, caregiverID int64) ([]*domain.Appointment, error)
}

// CaregiverServiceClient resolves caregiver references.
type CaregiverServiceClient interface {
	GetByID(ctx context.Context, id int64) (*caregiverservice.Caregiver, error)
}

// PetServiceClient resolves pet references.
type PetServiceClient interface {
	GetByID(ctx context.Context, id int64) (*petservice.Pet, error)
}

// TransactionManager wraps the conflict scan and the insert in one
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
