package models

import (
	"time"

	"github.com/compawny/scheduling-service/internal/domain"
)

// AppointmentResponse is the plain appointment record returned by the
// lifecycle operations. Money is rendered with exactly two fractional
// digits; endTime is derived, never stored.
type AppointmentResponse struct {
	ID                int64     `json:"id"`
	PetID             int64     `json:"petId"`
	CaregiverID       int64     `json:"caregiverId"`
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
	DurationInMinutes int       `json:"durationInMinutes"`
	Status            string    `json:"status"`
	TotalPrice        string    `json:"totalPrice"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// AppointmentListResponse wraps an unpaginated listing.
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
}

// AppointmentPageResponse wraps one page of the full listing.
type AppointmentPageResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"pageSize"`
	Total        int64                  `json:"total"`
}

// FromDomainAppointment converts a domain appointment to the response
// model.
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
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

// FromDomainAppointmentList converts a slice of domain appointments.
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, len(appointments))
	for i, appt := range appointments {
		out[i] = FromDomainAppointment(appt)
	}
	return &AppointmentListResponse{Appointments: out}
}
