package create_appointment

import (
	"errors"
	"net/http"

	"github.com/compawny/scheduling-service/internal/api/handlers"
	"github.com/compawny/scheduling-service/internal/infra/lock"
	createAppointment "github.com/compawny/scheduling-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgCaregiverBusy      = "caregiver schedule is busy, try again"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /appointments - Rejected: pet_id=%d, caregiver_id=%d, error=%v",
				req.PetID, req.CaregiverID, err)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Validation failed: pet_id=%d, caregiver_id=%d, error=%v",
				req.PetID, req.CaregiverID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, lock.ErrLockNotAcquired):
			h.logger.Warn("POST /appointments - Caregiver lock busy: caregiver_id=%d", req.CaregiverID)
			handlers.RespondError(w, http.StatusConflict, msgCaregiverBusy)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: pet_id=%d, caregiver_id=%d, error=%v",
				req.PetID, req.CaregiverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, pet_id=%d, caregiver_id=%d",
		result.ID, req.PetID, req.CaregiverID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
