package domain

import (
	"fmt"
	"time"
)

// Resource names used by NotFoundError.
const (
	ResourceAppointment = "appointment"
	ResourceCaregiver   = "caregiver"
	ResourcePet         = "pet"
)

// The error types below form the closed taxonomy of business failures.
// Each variant carries the structured context a caller needs to render
// its own message; the transport layer maps variants to status codes in
// a single table and never parses error strings.

// NotFoundError indicates a referenced appointment, pet or caregiver
// that does not exist or is soft-deleted.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id=%d not found", e.Resource, e.ID)
}

// CaregiverUnavailableError indicates a caregiver flagged unavailable
// at booking time.
type CaregiverUnavailableError struct {
	CaregiverID int64
}

func (e *CaregiverUnavailableError) Error() string {
	return fmt.Sprintf("caregiver id=%d is not available for appointments", e.CaregiverID)
}

// ScheduleConflictError indicates an overlap between the requested
// interval and an existing non-terminal appointment of the caregiver.
type ScheduleConflictError struct {
	CaregiverID int64
	StartTime   time.Time
	EndTime     time.Time
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("schedule conflict for caregiver id=%d between %s and %s",
		e.CaregiverID, e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339))
}

// InvalidStatusTransitionError indicates a lifecycle move the
// transition graph does not allow.
type InvalidStatusTransitionError struct {
	Current   AppointmentStatus
	Requested AppointmentStatus
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("cannot transition appointment from %s to %s", e.Current, e.Requested)
}

// InvalidAppointmentStateError indicates an edit attempted while the
// appointment is not in the Scheduled state.
type InvalidAppointmentStateError struct {
	Current   AppointmentStatus
	Operation string
}

func (e *InvalidAppointmentStateError) Error() string {
	return fmt.Sprintf("cannot perform %s on appointment with status %s", e.Operation, e.Current)
}
