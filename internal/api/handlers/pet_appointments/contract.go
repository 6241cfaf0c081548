package pet_appointments

import (
	"context"

	"github.com/compawny/scheduling-service/internal/service/appointments/models"
)

type AppointmentService interface {
	ListUpcomingByPet(ctx context.Context, petID int64) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
