package update_appointment

import (
	"time"

	updateAppointment "github.com/compawny/scheduling-service/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model; absent fields stay
// untouched.
type UpdateAppointmentRequest struct {
	StartTime         *time.Time `json:"startTime,omitempty"` // RFC 3339
	DurationInMinutes *int       `json:"durationInMinutes,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                int64   `json:"id"`
	PetID             int64   `json:"petId"`
	CaregiverID       int64   `json:"caregiverId"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	DurationInMinutes int     `json:"durationInMinutes"`
	Status            string  `json:"status"`
	TotalPrice        string  `json:"totalPrice"`
	Notes             *string `json:"notes,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id int64) *updateAppointment.Request {
	return &updateAppointment.Request{
		ID:                id,
		StartTime:         r.StartTime,
		DurationInMinutes: r.DurationInMinutes,
		Notes:             r.Notes,
	}
}

// FromUseCaseResponse converts the use case response into the HTTP
// response model.
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                resp.ID,
		PetID:             resp.PetID,
		CaregiverID:       resp.CaregiverID,
		StartTime:         resp.StartTime.Format(time.RFC3339),
		EndTime:           resp.EndTime.Format(time.RFC3339),
		DurationInMinutes: resp.DurationInMinutes,
		Status:            resp.Status,
		TotalPrice:        resp.TotalPrice,
		Notes:             resp.Notes,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
