package create_appointment

import (
	"time"

	createAppointment "github.com/compawny/scheduling-service/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PetID             int64     `json:"petId"`
	CaregiverID       int64     `json:"caregiverId"`
	StartTime         time.Time `json:"startTime"` // RFC 3339
	DurationInMinutes int       `json:"durationInMinutes"`
	Notes             *string   `json:"notes,omitempty"`
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
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		PetID:             r.PetID,
		CaregiverID:       r.CaregiverID,
		StartTime:         r.StartTime,
		DurationInMinutes: r.DurationInMinutes,
		Notes:             r.Notes,
	}
}

// FromUseCaseResponse converts the use case response into the HTTP
// response model.
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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
