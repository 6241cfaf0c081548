package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment represents a time-bounded pet-care booking with a
// caregiver. Pet and caregiver are referenced by identity only; the
// fields read from them at resolution time never live on the
// appointment itself.
type Appointment struct {
	ID                int64
	PetID             int64
	CaregiverID       int64
	StartTime         time.Time
	DurationInMinutes int
	Status            AppointmentStatus
	TotalPrice        decimal.Decimal
	Notes             *string
	Deleted           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime is derived from start and duration, never stored.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationInMinutes) * time.Minute)
}

// IsActive reports whether the appointment still counts for conflict
// detection (Scheduled or InProgress).
func (a *Appointment) IsActive() bool {
	return !a.Status.IsTerminal()
}

// Start moves the appointment to InProgress.
func (a *Appointment) Start() error {
	return a.transitionTo(StatusInProgress)
}

// Complete moves the appointment to Completed.
func (a *Appointment) Complete() error {
	return a.transitionTo(StatusCompleted)
}

// Cancel moves the appointment to Cancelled.
func (a *Appointment) Cancel() error {
	return a.transitionTo(StatusCancelled)
}

func (a *Appointment) transitionTo(next AppointmentStatus) error {
	if !a.Status.CanTransitionTo(next) {
		return &InvalidStatusTransitionError{Current: a.Status, Requested: next}
	}
	a.Status = next
	return nil
}

// EnsureEditable gates field updates: start time, duration and notes
// may only change while the appointment is Scheduled.
func (a *Appointment) EnsureEditable(operation string) error {
	if a.Status != StatusScheduled {
		return &InvalidAppointmentStateError{Current: a.Status, Operation: operation}
	}
	return nil
}
