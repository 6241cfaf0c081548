package create_appointment

import (
	"time"

	"github.com/compawny/scheduling-service/internal/domain"
)

// Request carries the plain values of a booking attempt.
type Request struct {
	PetID             int64
	CaregiverID       int64
	StartTime         time.Time
	DurationInMinutes int
	Notes             *string
}

// Response is the created appointment record.
type Response struct {
	ID                int64
	PetID             int64
	CaregiverID       int64
	StartTime         time.Time
	EndTime           time.Time
	DurationInMinutes int
	Status            string
	TotalPrice        string
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FromDomain converts a persisted appointment into the response model.
func FromDomain(appt *domain.Appointment) *Response {
	return &Response{
		ID:                appt.ID,
		PetID:             appt.PetID,
		CaregiverID:       appt.CaregiverID,
		StartTime:         appt.StartTime,
		EndTime:           appt.EndTime(),
		DurationInMinutes: appt.DurationInMinutes,
		Status:            string(appt.Status),
		TotalPrice:        appt.TotalPrice.StringFixed(2),
		Notes:             appt.Notes,
		CreatedAt:         appt.CreatedAt,
		UpdatedAt:         appt.UpdatedAt,
	}
}
