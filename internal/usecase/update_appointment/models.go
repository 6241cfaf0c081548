package update_appointment

import (
	"time"

	"github.com/compawny/scheduling-service/internal/domain"
)

// Request carries a partial update: only non-nil fields are applied.
type Request struct {
	ID                int64
	StartTime         *time.Time
	DurationInMinutes *int
	Notes             *string
}

// ChangesTime reports whether the update touches the appointment's
// interval and therefore requires conflict re-detection and repricing.
func (r *Request) ChangesTime() bool {
	return r.StartTime != nil || r.DurationInMinutes != nil
}

// Response is the updated appointment record.
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
