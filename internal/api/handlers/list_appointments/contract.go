package list_appointments

import (
	"context"

	"github.com/compawny/scheduling-service/internal/domain"
	"github.com/compawny/scheduling-service/internal/service/appointments/models"
)

type AppointmentService interface {
	List(ctx context.Context, params domain.ListParams) (*models.AppointmentPageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
